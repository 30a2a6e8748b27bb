package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"
)

type TasksCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	format string
}

// NewTasksCommand returns the tasks command.
func NewTasksCommand(rootCmd *RootCommand, app *kingpin.Application) *TasksCommand {
	c := &TasksCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("tasks", "List the seeded tasks.")
	c.Cmd.Flag("format", "Output format (table, json).").Default(formatTable).EnumVar(&c.format, formatTable, formatJSON)

	return c
}

func (c TasksCommand) Name() string { return c.Cmd.FullCommand() }

func (c TasksCommand) Run(ctx context.Context) error {
	store, err := c.rootCmd.NewStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	tasks, err := store.Tasks(ctx)
	if err != nil {
		return fmt.Errorf("could not list tasks: %w", err)
	}

	if err := newPrinter(c.format, c.rootCmd.Stdout).PrintTasks(tasks); err != nil {
		return fmt.Errorf("could not print tasks: %w", err)
	}

	return nil
}
