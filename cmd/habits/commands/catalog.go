package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/habits/pkg/lib"
)

const (
	catalogKindAvailable = "available"
	catalogKindBrainGame = "brain-game"
	catalogKindMovement  = "movement"
	catalogKindHabits    = "habits"
)

type CatalogCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	kind   string
	group  string
	search string
	format string
}

// NewCatalogCommand returns the catalog command.
func NewCatalogCommand(rootCmd *RootCommand, app *kingpin.Application) *CatalogCommand {
	c := &CatalogCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("catalog", "List the activity and habit catalogs.")
	c.Cmd.Flag("kind", "Catalog to list (available, brain-game, movement, habits).").Default(catalogKindHabits).EnumVar(&c.kind, catalogKindAvailable, catalogKindBrainGame, catalogKindMovement, catalogKindHabits)
	c.Cmd.Flag("group", "Habit catalog group (all, health, mindfulness, productivity, social).").Default("all").StringVar(&c.group)
	c.Cmd.Flag("search", "Case insensitive habit title search.").StringVar(&c.search)
	c.Cmd.Flag("format", "Output format (table, json).").Default(formatTable).EnumVar(&c.format, formatTable, formatJSON)

	return c
}

func (c CatalogCommand) Name() string { return c.Cmd.FullCommand() }

func (c CatalogCommand) Run(ctx context.Context) error {
	store, err := c.rootCmd.NewStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	p := newPrinter(c.format, c.rootCmd.Stdout)

	switch c.kind {
	case catalogKindAvailable:
		err = p.PrintActivities(store.AvailableActivities())
	case catalogKindBrainGame:
		err = p.PrintActivities(store.BrainGameActivities())
	case catalogKindMovement:
		err = p.PrintActivities(store.MovementActivities())
	default:
		habits := store.SearchHabitCatalog(ctx, lib.HabitFilter{Group: c.group, Query: c.search})
		if len(habits) == 0 {
			c.rootCmd.Logger.Warningf("No habits match, groups are: %v", store.HabitGroups())
		}
		err = p.PrintHabitCatalog(habits)
	}
	if err != nil {
		return fmt.Errorf("could not print catalog: %w", err)
	}

	return nil
}
