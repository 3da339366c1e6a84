package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/Harrypapa1/pdf-processorHOC-HOL/internal/api"
	"github.com/Harrypapa1/pdf-processorHOC-HOL/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP conversion API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serverAddr, "addr", "", "listen address (defaults to config server_addr)")
	rootCmd.AddCommand(serveCmd)
}

var serverAddr string

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	store, proc, writer, err := buildPipeline(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	server := api.NewServer(proc, writer, store, logger.L())
	app := server.App()

	addr := serverAddr
	if addr == "" {
		addr = cfg.ServerAddr
	}

	errCh := make(chan error, 1)
	go func() {
		logger.L().Info("server.listen", "addr", addr)
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.L().Info("server.shutdown")
		return app.Shutdown()
	}
}
