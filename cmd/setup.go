package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/todox/internal/models"
	"github.com/desertthunder/todox/internal/repositories"
	"github.com/desertthunder/todox/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes the example configuration to --config unless a file already exists there.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := r.configPath
	if _, err := os.Stat(path); err == nil {
		r.logger.Warn("config file already exists", "path", path)
		return r.writePlain("Config already exists at %v\n", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to check config file: %w", err)
	}

	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}
	r.logger.Info("config file created", "path", path)
	return r.writePlain("✓ Created %v\n", path)
}

// SetupDatabase initializes the database and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	r.logger.Info("initializing database", "path", r.config.Database.Path)

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	switch {
	case cmd.Bool("rollback"):
		r.logger.Info("rolling back last migration")
		if err := shared.RollbackMigration(db); err != nil {
			return fmt.Errorf("failed to roll back migration: %w", err)
		}
	case cmd.Bool("status"):
	default:
		r.logger.Info("running database migrations")
		if err := shared.RunMigrations(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	applied, err := shared.AppliedMigrations(db)
	if err != nil {
		return err
	}

	r.writePlainHeader(fmt.Sprintf("Database: %v", r.config.Database.Path))
	if len(applied) == 0 {
		return r.writePlain("No migrations applied\n")
	}
	for _, m := range applied {
		r.writePlain("  %03d  applied %v\n", m.Version, m.AppliedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

// SetupUser creates a server account with a generated token.
func (r *Runner) SetupUser(ctx context.Context, cmd *cli.Command) error {
	name := strings.TrimSpace(cmd.StringArg("name"))
	if name == "" {
		return fmt.Errorf("%w: name", shared.ErrMissingArgument)
	}

	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	user := models.NewUser(0, name, shared.GenerateID())
	if err := repositories.NewUserRepository(db).Create(user); err != nil {
		return err
	}
	r.logger.Info("created user", "id", user.ID(), "name", name)

	if cmd.Bool("login") {
		if err := r.tokenFile.Write(user.Token()); err != nil {
			return err
		}
		r.logger.Info("token stored", "path", r.tokenFile.Path())
	}

	return r.writePlain("User:  %v (%v)\nToken: %v\n", user.Name(), user.ID(), user.Token())
}
