package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"docchat/internal/history"
	"docchat/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP and WebSocket API server",
	Long: `Serves the chatbot over HTTP (REST endpoints under /api) and WebSocket
(/ws/chat). An existing knowledge base is loaded at startup; POST to
/api/setup to build or rebuild one while the server is running.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.Port = port
	}

	bot, err := newBot(cfg, false)
	if err != nil {
		return err
	}

	if loaded, err := bot.LoadIndex(ctx); err != nil {
		return err
	} else if !loaded {
		log.Printf("no knowledge base found at %s; POST /api/setup to build one", cfg.VectorStorePath)
	}

	transcript, err := history.Open(cfg.HistoryPath)
	if err != nil {
		log.Printf("chat transcript disabled: %v", err)
		transcript = nil
	} else {
		defer transcript.Close()
	}

	srv := server.New(cfg, bot, transcript)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
