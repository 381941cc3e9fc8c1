package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sains1/oneshot-http/app/lib/http"
)

var port int
var readTimeout time.Duration
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "oneshot-http",
	Short: "A one-request-per-connection HTTP/1.1 server over raw TCP",
	Run: func(cmd *cobra.Command, args []string) {
		run()
	},
}

func init() {
	rootCmd.Flags().IntVarP(&port, "port", "p", 4221, "port to listen on")
	rootCmd.Flags().DurationVar(&readTimeout, "read-timeout", 10*time.Second, "per-connection read deadline, 0 disables")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).With().Logger()

	l, err := net.Listen("tcp", fmt.Sprintf("0.0.0.0:%d", port))
	if err != nil {
		logger.Fatal().Err(err).Msgf("failed to bind port %d", port)
		os.Exit(1)
	}

	fmt.Print("Serving on ")
	color.New(color.Bold, color.FgGreen).Printf("http://0.0.0.0:%d\n", port)

	// Root handler
	root := http.NewRouteHandler("/", func(req http.HttpRequest, body http.DecodedBody) (string, error) {
		req.Logger.Info().Msg("handling root")
		return "Hello, world!", nil
	})

	// Details handler
	details := http.NewRouteHandler("/details", func(req http.HttpRequest, body http.DecodedBody) (string, error) {
		req.Logger.Info().Str("name", body["name"]).Msg("handling details")
		return fmt.Sprintf("Hello %s, you live at address: %s", body["name"], body["address"]), nil
	})

	router := http.NewRouter(root, details)
	pipeline := http.NewHttpPipeline(router, logger, readTimeout)

	for {
		conn, err := l.Accept()
		if err != nil {
			logger.Fatal().Err(err).Msg("Error accepting connection")
			os.Exit(1)
		}

		logger.Debug().Msg("Accepted connection")

		go pipeline.Handle(conn)
	}
}
