package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/todox/internal/formatter"
	"github.com/desertthunder/todox/internal/models"
	"github.com/desertthunder/todox/internal/shared"
	"github.com/desertthunder/todox/internal/tasks"
	"github.com/urfave/cli/v3"
)

// filter resolves --filter, falling back to the configured default.
func (r *Runner) filter(cmd *cli.Command) (models.Filter, error) {
	value := cmd.String("filter")
	if value == "" {
		value = r.config.UI.DefaultFilter
	}
	return models.ParseFilter(value)
}

// loaded returns a synchronizer whose list reflects the server.
func (r *Runner) loaded(ctx context.Context, filter models.Filter) (*tasks.Synchronizer, error) {
	sync := r.synchronizer(filter)
	if err := sync.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	return sync, nil
}

// TodosList prints the filtered view followed by the counts.
func (r *Runner) TodosList(ctx context.Context, cmd *cli.Command) error {
	filter, err := r.filter(cmd)
	if err != nil {
		return err
	}

	sync, err := r.loaded(ctx, filter)
	if err != nil {
		return err
	}
	view := sync.View()

	if cmd.Bool("json") {
		return r.writeJSON(view, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Tasks (%v)", filter))
	if len(view) == 0 {
		r.writePlain("Nothing to show.\n")
	}
	for _, task := range view {
		r.writePlain("%-36v  %v\n", task.ID, formatter.FormatTask(task))
	}
	return r.writePlainln("%v", formatter.FormatCounts(sync.Counts()))
}

// TodosAdd creates a task from the joined arguments.
func (r *Runner) TodosAdd(ctx context.Context, cmd *cli.Command) error {
	text := strings.Join(cmd.Args().Slice(), " ")
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: text", shared.ErrMissingArgument)
	}

	task, err := r.synchronizer(models.FilterAll).Create(ctx, text)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	r.logger.Debug("created task", "id", task.ID)
	return r.writePlain("✓ Created %v  %v\n", task.ID, formatter.FormatTask(task))
}

// TodosToggle flips the completion of a task.
func (r *Runner) TodosToggle(ctx context.Context, cmd *cli.Command) error {
	id := strings.TrimSpace(cmd.StringArg("id"))
	if id == "" {
		return fmt.Errorf("%w: id", shared.ErrMissingArgument)
	}

	sync, err := r.loaded(ctx, models.FilterAll)
	if err != nil {
		return err
	}

	task, err := sync.Toggle(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to toggle task: %w", err)
	}
	return r.writePlain("✓ %v\n", formatter.FormatTask(task))
}

// TodosEdit replaces a task's text with the joined remaining arguments.
func (r *Runner) TodosEdit(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args()
	id := strings.TrimSpace(args.First())
	if id == "" {
		return fmt.Errorf("%w: id", shared.ErrMissingArgument)
	}

	text := strings.Join(args.Tail(), " ")
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: text", shared.ErrMissingArgument)
	}

	sync, err := r.loaded(ctx, models.FilterAll)
	if err != nil {
		return err
	}

	task, err := sync.Edit(ctx, id, text)
	if err != nil {
		return fmt.Errorf("failed to edit task: %w", err)
	}
	return r.writePlain("✓ %v\n", formatter.FormatTask(task))
}

// TodosRemove deletes a task.
func (r *Runner) TodosRemove(ctx context.Context, cmd *cli.Command) error {
	id := strings.TrimSpace(cmd.StringArg("id"))
	if id == "" {
		return fmt.Errorf("%w: id", shared.ErrMissingArgument)
	}

	if err := r.synchronizer(models.FilterAll).Remove(ctx, id); err != nil {
		return fmt.Errorf("failed to remove task: %w", err)
	}
	return r.writePlain("✓ Removed %v\n", id)
}

// TodosCounts prints total, completed and active counts.
func (r *Runner) TodosCounts(ctx context.Context, cmd *cli.Command) error {
	sync, err := r.loaded(ctx, models.FilterAll)
	if err != nil {
		return err
	}

	counts := sync.Counts()
	if cmd.Bool("json") {
		return r.writeJSON(counts, false)
	}
	return r.writePlain("%v\n", formatter.FormatCounts(counts))
}

// TodosExport writes the filtered view in the requested format.
func (r *Runner) TodosExport(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	filter, err := r.filter(cmd)
	if err != nil {
		return err
	}

	sync, err := r.loaded(ctx, filter)
	if err != nil {
		return err
	}

	export := formatter.NewExport("Tasks", filter, sync.View(), sync.Counts())

	output := cmd.String("output")
	if output == "-" {
		data, err := formatter.Encode(export, format)
		if err != nil {
			return err
		}
		_, err = r.output.Write(data)
		return err
	}

	path, err := formatter.WriteExport(export, format, output)
	if err != nil {
		return err
	}

	r.logger.Info("exported tasks", "path", path, "count", len(export.Tasks))
	return r.writePlain("✓ Exported %d tasks to %v\n", len(export.Tasks), path)
}
