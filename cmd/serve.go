package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/todox/internal/repositories"
	"github.com/desertthunder/todox/internal/server"
	"github.com/desertthunder/todox/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve runs the task API until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	addr := r.config.Server
	if host := cmd.String("host"); host != "" {
		addr.Host = host
	}
	if port := cmd.Int("port"); port != 0 {
		addr.Port = int(port)
	}

	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Opts{
		Addr:   addr.Addr(),
		Users:  repositories.NewUserRepository(db),
		Tasks:  repositories.NewTaskRepository(db),
		Logger: r.logger,
	})

	r.logger.Info("serving task API", "addr", addr.Addr(), "database", r.config.Database.Path)
	return srv.Run(ctx)
}
