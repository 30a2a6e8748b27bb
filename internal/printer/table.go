package printer

import (
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/slok/habits/pkg/lib"
)

// TablePrinter prints habits store information in a table format.
type TablePrinter struct {
	writer io.Writer
}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w}
}

// PrintTasks prints tasks in a table format.
func (t *TablePrinter) PrintTasks(tasks []lib.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	// Print header.
	fmt.Fprintln(tw, "KEY\tTITLE\tCATEGORY\tPROGRESS\t\tPOINTS\tDURATION\tSTREAK")

	// Print rows.
	for _, task := range tasks {
		title := task.Title
		if task.Icon != "" {
			title = task.Icon + " " + title
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			task.Key,
			title,
			task.Category,
			ProgressBar(task.Completed, task.Total),
			FormatProgress(task.Completed, task.Total),
			task.Points,
			task.Duration,
			task.Streak,
		)
	}

	return nil
}

// PrintMyHabits prints weekly habits in a table format.
func (t *TablePrinter) PrintMyHabits(habits []lib.MyHabit) error {
	if len(habits) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "KEY\tTITLE\tWEEK\t\tTODAY")
	for _, h := range habits {
		today := "no"
		if h.Completed {
			today = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s %s\t%s\t%d/%d\t%s\n",
			h.Key, h.Icon, h.Title,
			ProgressBar(h.WeekProgress, h.WeekTotal), h.WeekProgress, h.WeekTotal,
			today,
		)
	}

	return nil
}

// PrintActivities prints catalog activities in a table format.
func (t *TablePrinter) PrintActivities(activities []lib.AvailableActivity) error {
	if len(activities) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "KEY\tTITLE\tCATEGORY\tPOINTS\tSUBTITLE")
	for _, a := range activities {
		fmt.Fprintf(tw, "%s\t%s %s\t%s\t%d\t%s\n", a.Key, a.Icon, a.Title, a.Category, a.Points, a.Subtitle)
	}

	return nil
}

// PrintHabitCatalog prints the explore habit catalog in a table format.
func (t *TablePrinter) PrintHabitCatalog(habits []lib.HabitDescriptor) error {
	if len(habits) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "ID\tTITLE\tGROUP\tPOINTS")
	for _, h := range habits {
		fmt.Fprintf(tw, "%s\t%s %s\t%s\t%d\n", h.ID, h.Icon, h.Title, h.Category, h.Points)
	}

	return nil
}

// PrintLedger prints the coin ledger in a table format.
func (t *TablePrinter) PrintLedger(entries []lib.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "ID\tAMOUNT\tREASON\tTASK\tBALANCE\tCREATED")
	for _, e := range entries {
		task := e.TaskKey
		if task == "" {
			task = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
			e.ID,
			FormatCoins(e.Amount),
			e.Reason,
			task,
			e.Balance,
			TimeAgo(e.CreatedAt),
		)
	}

	return nil
}

// PrintSummary prints the store summary.
func (t *TablePrinter) PrintSummary(summary lib.Summary) error {
	fmt.Fprintf(t.writer, "Tasks:       %d/%d done, %d remaining\n", summary.CompletedTasks, summary.TotalTasks, summary.RemainingTasks)
	fmt.Fprintf(t.writer, "Progress:    %s %d%%\n", ProgressBar(summary.CompletedTasks, summary.TotalTasks), summary.ProgressPercent)
	fmt.Fprintf(t.writer, "Completions: %d\n", summary.TotalCompletions)
	fmt.Fprintf(t.writer, "Coins:       %d\n", summary.Coins)
	fmt.Fprintf(t.writer, "Earned:      %d\n", summary.CompletionValue)
	fmt.Fprintf(t.writer, "Steps:       %d\n", summary.CurrentSteps)
	fmt.Fprintf(t.writer, "Habits:      %d done today\n", summary.HabitsDoneToday)

	categories := make([]lib.Category, 0, len(summary.CategoryCounts))
	for c := range summary.CategoryCounts {
		categories = append(categories, c)
	}
	slices.Sort(categories)
	for _, c := range categories {
		name := string(c)
		if name == "" {
			name = "None"
		}
		fmt.Fprintf(t.writer, "  %-10s %d\n", name+":", summary.CategoryCounts[c])
	}

	return nil
}

// PrintEvent prints a store change notification.
func (t *TablePrinter) PrintEvent(event lib.Event) error {
	if event.Key == "" {
		fmt.Fprintf(t.writer, "[%s] %s\n", FormatTimestamp(event.At), event.Kind)
		return nil
	}

	fmt.Fprintf(t.writer, "[%s] %s %s\n", FormatTimestamp(event.At), event.Kind, event.Key)
	return nil
}

// PrintMessage prints a simple text message.
func (t *TablePrinter) PrintMessage(msg string) error {
	fmt.Fprintln(t.writer, msg)
	return nil
}
