package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/habits/internal/log"
	"github.com/slok/habits/internal/printer"
	"github.com/slok/habits/pkg/lib"
)

const (
	sessionOpAdd          = "add"
	sessionOpAddHabit     = "add-habit"
	sessionOpProgress     = "progress"
	sessionOpToggle       = "toggle"
	sessionOpReplace      = "replace"
	sessionOpCoins        = "coins"
	sessionOpSteps        = "steps"
	sessionOpConvertSteps = "convert-steps"
	sessionOpTasks        = "tasks"
	sessionOpMyHabits     = "my-habits"
	sessionOpLedger       = "ledger"
	sessionOpSummary      = "summary"
)

// sessionOpArgs is the number of arguments of every session operation.
var sessionOpArgs = map[string]int{
	sessionOpAdd:          1,
	sessionOpAddHabit:     1,
	sessionOpProgress:     1,
	sessionOpToggle:       1,
	sessionOpReplace:      2,
	sessionOpCoins:        1,
	sessionOpSteps:        1,
	sessionOpConvertSteps: 0,
	sessionOpTasks:        0,
	sessionOpMyHabits:     0,
	sessionOpLedger:       0,
	sessionOpSummary:      0,
}

type sessionLine struct {
	op   string
	args []string
	// n is the numeric argument of coins and steps.
	n int
}

// parseSessionLine parses a script line, blank lines and comments return nil.
func parseSessionLine(line string) (*sessionLine, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil, nil
	}

	fields := strings.Fields(line)
	op, args := fields[0], fields[1:]

	nargs, ok := sessionOpArgs[op]
	if !ok {
		return nil, fmt.Errorf("unknown operation %q", op)
	}
	if len(args) != nargs {
		return nil, fmt.Errorf("%q expects %d arguments, got %d", op, nargs, len(args))
	}

	sl := &sessionLine{op: op, args: args}
	if op == sessionOpCoins || op == sessionOpSteps {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, fmt.Errorf("%q expects a number: %w", op, err)
		}
		sl.n = n
	}

	return sl, nil
}

type SessionCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	script      string
	format      string
	printEvents bool
}

// NewSessionCommand returns the session command.
func NewSessionCommand(rootCmd *RootCommand, app *kingpin.Application) *SessionCommand {
	c := &SessionCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("session", "Run a script of operations against a fresh store (stdin by default).")
	c.Cmd.Flag("script", "Script file, one operation per line.").StringVar(&c.script)
	c.Cmd.Flag("format", "Output format (table, json).").Default(formatTable).EnumVar(&c.format, formatTable, formatJSON)
	c.Cmd.Flag("print-events", "Print the store change events.").BoolVar(&c.printEvents)

	return c
}

func (c SessionCommand) Name() string { return c.Cmd.FullCommand() }

func (c SessionCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	in := c.rootCmd.Stdin
	if c.script != "" {
		f, err := os.Open(c.script)
		if err != nil {
			return fmt.Errorf("could not open script: %w", err)
		}
		defer f.Close()
		in = f
	}

	store, err := c.rootCmd.NewStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	runner := sessionRunner{
		store:       store,
		printer:     newPrinter(c.format, c.rootCmd.Stdout),
		logger:      logger,
		printEvents: c.printEvents,
	}

	return runner.Run(ctx, in)
}

type sessionRunner struct {
	store       *lib.Store
	printer     printer.Printer
	logger      log.Logger
	printEvents bool
}

// Run executes the script lines in order. Invalid operations on the store are
// reported and the script goes on, anything else stops it.
func (s sessionRunner) Run(ctx context.Context, r io.Reader) error {
	unsubscribe := s.store.Subscribe(func(e lib.Event) {
		s.logger.WithValues(log.Kv{"event": e.Kind, "key": e.Key}).Debugf("Store changed")
		if s.printEvents {
			if err := s.printer.PrintEvent(e); err != nil {
				s.logger.Errorf("Could not print event: %s", err)
			}
		}
	})
	defer unsubscribe()

	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := parseSessionLine(scanner.Text())
		if err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
		if line == nil {
			continue
		}

		err = s.exec(ctx, *line)
		switch {
		case err == nil:
		case errors.Is(err, lib.ErrNotValid):
			s.logger.Warningf("Line %d rejected: %s", n, err)
			if err := s.printer.PrintMessage(fmt.Sprintf("Line %d rejected: %s", n, err)); err != nil {
				return err
			}
		default:
			return fmt.Errorf("line %d: %w", n, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("could not read script: %w", err)
	}

	return nil
}

func (s sessionRunner) exec(ctx context.Context, line sessionLine) error {
	switch line.op {
	case sessionOpAdd:
		habit, err := s.store.HabitByID(line.args[0])
		if errors.Is(err, lib.ErrNotFound) {
			return s.unknown(ctx, "habit", line.args[0])
		}
		if err != nil {
			return err
		}
		res, err := s.store.AddTask(ctx, *habit)
		if err != nil {
			return err
		}
		if !res.Added {
			return s.printf("Task %q already tracked", res.Task.Key)
		}
		return s.printf("Task %q added (%d/%d)", res.Task.Key, res.Task.Completed, res.Task.Total)

	case sessionOpAddHabit:
		habit, err := s.store.HabitByID(line.args[0])
		if errors.Is(err, lib.ErrNotFound) {
			return s.unknown(ctx, "habit", line.args[0])
		}
		if err != nil {
			return err
		}
		res, err := s.store.AddMyHabit(ctx, *habit)
		if err != nil {
			return err
		}
		if !res.Added {
			return s.printf("Habit %q already tracked", res.Habit.Key)
		}
		return s.printf("Habit %q added (%d/%d)", res.Habit.Key, res.Habit.WeekProgress, res.Habit.WeekTotal)

	case sessionOpProgress:
		res, err := s.store.UpdateTaskProgress(ctx, line.args[0])
		if err != nil {
			return err
		}
		return s.printProgress(ctx, line.args[0], *res)

	case sessionOpToggle:
		res, err := s.store.ToggleMyHabit(ctx, line.args[0])
		if err != nil {
			return err
		}
		if res.Habit == nil {
			return s.unknown(ctx, "habit", line.args[0])
		}
		state := "not done"
		if res.Habit.Completed {
			state = "done"
		}
		return s.printf("Habit %q %s today, week %d/%d", res.Habit.Key, state, res.Habit.WeekProgress, res.Habit.WeekTotal)

	case sessionOpReplace:
		return s.replace(ctx, line.args[0], line.args[1])

	case sessionOpCoins:
		res, err := s.store.UpdateCoins(ctx, line.n)
		if err != nil {
			return err
		}
		if !res.Changed {
			return s.printf("Coins: %d (unchanged)", res.Coins)
		}
		return s.printf("Coins: %d (%s)", res.Coins, printer.FormatCoins(line.n))

	case sessionOpSteps:
		res, err := s.store.UpdateSteps(ctx, line.n)
		if err != nil {
			return err
		}
		return s.printf("Steps: %d", res.CurrentSteps)

	case sessionOpConvertSteps:
		res, err := s.store.ConvertSteps(ctx)
		if err != nil {
			return err
		}
		msg := fmt.Sprintf("Converted steps into %s coins", printer.FormatCoins(res.CoinsEarned))
		if res.Progress.Advanced {
			msg += fmt.Sprintf(", steps task %s coins", printer.FormatCoins(res.Progress.CoinsEarned))
		}
		return s.printer.PrintMessage(msg)

	case sessionOpTasks:
		tasks, err := s.store.Tasks(ctx)
		if err != nil {
			return err
		}
		return s.printer.PrintTasks(tasks)

	case sessionOpMyHabits:
		habits, err := s.store.MyHabits(ctx)
		if err != nil {
			return err
		}
		return s.printer.PrintMyHabits(habits)

	case sessionOpLedger:
		entries, err := s.store.Ledger(ctx)
		if err != nil {
			return err
		}
		return s.printer.PrintLedger(entries)

	case sessionOpSummary:
		sum, err := s.store.Summary(ctx)
		if err != nil {
			return err
		}
		return s.printer.PrintSummary(*sum)
	}

	return fmt.Errorf("unknown operation %q", line.op)
}

func (s sessionRunner) printProgress(ctx context.Context, key string, res lib.ProgressResult) error {
	switch {
	case res.Task == nil:
		return s.unknown(ctx, "task", key)
	case !res.Advanced:
		return s.printf("Task %q already done", key)
	}

	msg := fmt.Sprintf("Task %q %s, %s coins", key, printer.FormatProgress(res.Task.Completed, res.Task.Total), printer.FormatCoins(res.CoinsEarned))
	if res.JustCompleted {
		msg += ", completed"
	}
	return s.printer.PrintMessage(msg)
}

func (s sessionRunner) replace(ctx context.Context, taskKey, activityKey string) error {
	activity, err := s.store.ActivityByKey(activityKey)
	if errors.Is(err, lib.ErrNotFound) {
		return s.unknown(ctx, "activity", activityKey)
	}
	if err != nil {
		return err
	}

	res, err := s.store.ReplaceTask(ctx, taskKey, *activity)
	if err != nil {
		return err
	}
	if res.Replaced {
		return s.printf("Task %q replaced by %q", taskKey, res.Task.Key)
	}

	tasks, err := s.store.Tasks(ctx)
	if err != nil {
		return err
	}
	known := slices.ContainsFunc(tasks, func(t lib.Task) bool { return t.Key == taskKey })
	if !known {
		return s.unknown(ctx, "task", taskKey)
	}
	return s.printf("Task %q not replaced, %q is already a task", taskKey, activityKey)
}

// unknown reports a missing key with the closest known keys.
func (s sessionRunner) unknown(ctx context.Context, kind, key string) error {
	keys, err := s.store.SuggestKeys(ctx, key)
	if err != nil {
		return err
	}

	msg := fmt.Sprintf("Unknown %s %q", kind, key)
	if len(keys) > 0 {
		msg += fmt.Sprintf(", did you mean %s?", strings.Join(keys, ", "))
	}
	return s.printer.PrintMessage(msg)
}

func (s sessionRunner) printf(format string, a ...any) error {
	return s.printer.PrintMessage(fmt.Sprintf(format, a...))
}
