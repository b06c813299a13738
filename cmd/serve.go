package cmd

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/GabrielTofvesson/sudoku/internal/api"
	"github.com/GabrielTofvesson/sudoku/internal/storage"
)

var (
	serveAddr    string
	serveDataDir string
	serveEngine  string
	serveTimeout time.Duration
)

func init() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the Sudoku HTTP API",
		Long: `Serve the HTTP API: solve and generate puzzles over JSON, and
browse puzzles saved under the data directory.

Examples:
  sudoku serve
  sudoku serve --addr :9000 --data-dir ./puzzles
  sudoku serve --engine sat`,
		RunE: runServe,
	}

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	serveCmd.Flags().StringVar(&serveDataDir, "data-dir", "./puzzles", "Directory for stored puzzles")
	serveCmd.Flags().StringVar(&serveEngine, "engine", "backtrack", "Solving engine: backtrack or sat")
	serveCmd.Flags().DurationVar(&serveTimeout, "timeout", 30*time.Second, "Per-request solve and generate time limit")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if verbosity == 0 {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := storage.New(serveDataDir)
	if err != nil {
		return err
	}

	router := api.NewRouter(api.Config{
		Engine:  serveEngine,
		Timeout: serveTimeout,
		Store:   store,
	})

	log.Info().Str("addr", serveAddr).Str("dataDir", serveDataDir).Msg("listening")
	return router.Run(serveAddr)
}
