package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"
)

type MyHabitsCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	format string
}

// NewMyHabitsCommand returns the my-habits command.
func NewMyHabitsCommand(rootCmd *RootCommand, app *kingpin.Application) *MyHabitsCommand {
	c := &MyHabitsCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("my-habits", "List the seeded weekly habits.")
	c.Cmd.Flag("format", "Output format (table, json).").Default(formatTable).EnumVar(&c.format, formatTable, formatJSON)

	return c
}

func (c MyHabitsCommand) Name() string { return c.Cmd.FullCommand() }

func (c MyHabitsCommand) Run(ctx context.Context) error {
	store, err := c.rootCmd.NewStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	habits, err := store.MyHabits(ctx)
	if err != nil {
		return fmt.Errorf("could not list habits: %w", err)
	}

	if err := newPrinter(c.format, c.rootCmd.Stdout).PrintMyHabits(habits); err != nil {
		return fmt.Errorf("could not print habits: %w", err)
	}

	return nil
}
