package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crypticoder-go/pkg/coder"
	"crypticoder-go/pkg/log"

	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:  "serve",
	Usage: "Serve POST /encode and POST /decode over HTTP",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "listen",
			Aliases: []string{"l"},
			Usage:   "Listen address `ADDR` (defaults to api_listen_address)",
		},
	},
	Action: serveCmd,
}

func serveCmd(c *cli.Context) error {
	svc, err := coder.NewService(cfg)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}
	addr := cfg.APIListenAddr
	if c.IsSet("listen") {
		addr = c.String("listen")
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := coder.NewAPI(svc)
	errCh := make(chan error, 1)
	go func() { errCh <- api.Start(addr) }()
	fmt.Fprintf(c.App.Writer, "crypticoder API listening on %s\n", addr)

	select {
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Str("addr", addr).Msg("api server failed")
			return cli.Exit(fmt.Sprintf("Error: api server failed: %v", err), 1)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down api")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := api.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("api shutdown failed")
		return cli.Exit(fmt.Sprintf("Error during shutdown: %v", err), 1)
	}
	return nil
}
