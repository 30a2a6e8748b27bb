package printer

import (
	"encoding/json"
	"io"
	"time"

	"github.com/slok/habits/pkg/lib"
)

// JSONPrinter prints habits store information in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

type taskOutput struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Completed   int    `json:"completed"`
	Total       int    `json:"total"`
	Points      int    `json:"points"`
	Icon        string `json:"icon,omitempty"`
	Category    string `json:"category,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Streak      string `json:"streak,omitempty"`
	AutoTracked bool   `json:"auto_tracked,omitempty"`
	Done        bool   `json:"done"`
}

type myHabitOutput struct {
	Key          string `json:"key"`
	Title        string `json:"title"`
	Icon         string `json:"icon,omitempty"`
	WeekProgress int    `json:"week_progress"`
	WeekTotal    int    `json:"week_total"`
	Completed    bool   `json:"completed"`
}

type activityOutput struct {
	Key      string `json:"key"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Icon     string `json:"icon,omitempty"`
	Category string `json:"category"`
	Points   int    `json:"points"`
	Duration string `json:"duration,omitempty"`
}

type habitOutput struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Icon     string `json:"icon,omitempty"`
	Points   int    `json:"points"`
	Category string `json:"category,omitempty"`
}

type ledgerEntryOutput struct {
	ID        string    `json:"id"`
	Amount    int       `json:"amount"`
	Reason    string    `json:"reason"`
	TaskKey   string    `json:"task_key,omitempty"`
	Balance   int       `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
}

type summaryOutput struct {
	TotalTasks       int            `json:"total_tasks"`
	CompletedTasks   int            `json:"completed_tasks"`
	RemainingTasks   int            `json:"remaining_tasks"`
	TotalCompletions int            `json:"total_completions"`
	ProgressPercent  int            `json:"progress_percent"`
	CompletionValue  int            `json:"completion_value"`
	Coins            int            `json:"coins"`
	CurrentSteps     int            `json:"current_steps"`
	HabitsDoneToday  int            `json:"habits_done_today"`
	CategoryCounts   map[string]int `json:"category_counts"`
}

type eventOutput struct {
	Seq  uint64    `json:"seq"`
	Kind string    `json:"kind"`
	Key  string    `json:"key,omitempty"`
	At   time.Time `json:"at"`
}

// messageOutput represents a simple message output.
type messageOutput struct {
	Message string `json:"message"`
}

// PrintTasks prints tasks in JSON format.
func (j *JSONPrinter) PrintTasks(tasks []lib.Task) error {
	items := make([]taskOutput, len(tasks))
	for i, t := range tasks {
		items[i] = taskOutput{
			Key:         t.Key,
			Title:       t.Title,
			Completed:   t.Completed,
			Total:       t.Total,
			Points:      t.Points,
			Icon:        t.Icon,
			Category:    string(t.Category),
			Duration:    t.Duration,
			Streak:      t.Streak,
			AutoTracked: t.AutoTracked,
			Done:        t.Done(),
		}
	}

	return j.encode(items)
}

// PrintMyHabits prints weekly habits in JSON format.
func (j *JSONPrinter) PrintMyHabits(habits []lib.MyHabit) error {
	items := make([]myHabitOutput, len(habits))
	for i, h := range habits {
		items[i] = myHabitOutput{
			Key:          h.Key,
			Title:        h.Title,
			Icon:         h.Icon,
			WeekProgress: h.WeekProgress,
			WeekTotal:    h.WeekTotal,
			Completed:    h.Completed,
		}
	}

	return j.encode(items)
}

// PrintActivities prints catalog activities in JSON format.
func (j *JSONPrinter) PrintActivities(activities []lib.AvailableActivity) error {
	items := make([]activityOutput, len(activities))
	for i, a := range activities {
		items[i] = activityOutput{
			Key:      a.Key,
			Title:    a.Title,
			Subtitle: a.Subtitle,
			Icon:     a.Icon,
			Category: string(a.Category),
			Points:   a.Points,
			Duration: a.Duration,
		}
	}

	return j.encode(items)
}

// PrintHabitCatalog prints the explore habit catalog in JSON format.
func (j *JSONPrinter) PrintHabitCatalog(habits []lib.HabitDescriptor) error {
	items := make([]habitOutput, len(habits))
	for i, h := range habits {
		items[i] = habitOutput{
			ID:       h.ID,
			Title:    h.Title,
			Icon:     h.Icon,
			Points:   h.Points,
			Category: h.Category,
		}
	}

	return j.encode(items)
}

// PrintLedger prints the coin ledger in JSON format.
func (j *JSONPrinter) PrintLedger(entries []lib.LedgerEntry) error {
	items := make([]ledgerEntryOutput, len(entries))
	for i, e := range entries {
		items[i] = ledgerEntryOutput{
			ID:        e.ID,
			Amount:    e.Amount,
			Reason:    string(e.Reason),
			TaskKey:   e.TaskKey,
			Balance:   e.Balance,
			CreatedAt: e.CreatedAt.UTC(),
		}
	}

	return j.encode(items)
}

// PrintSummary prints the store summary in JSON format.
func (j *JSONPrinter) PrintSummary(summary lib.Summary) error {
	counts := make(map[string]int, len(summary.CategoryCounts))
	for c, n := range summary.CategoryCounts {
		counts[string(c)] = n
	}

	return j.encode(summaryOutput{
		TotalTasks:       summary.TotalTasks,
		CompletedTasks:   summary.CompletedTasks,
		RemainingTasks:   summary.RemainingTasks,
		TotalCompletions: summary.TotalCompletions,
		ProgressPercent:  summary.ProgressPercent,
		CompletionValue:  summary.CompletionValue,
		Coins:            summary.Coins,
		CurrentSteps:     summary.CurrentSteps,
		HabitsDoneToday:  summary.HabitsDoneToday,
		CategoryCounts:   counts,
	})
}

// PrintEvent prints a store change notification as a single JSON line.
func (j *JSONPrinter) PrintEvent(event lib.Event) error {
	return json.NewEncoder(j.writer).Encode(eventOutput{
		Seq:  event.Seq,
		Kind: string(event.Kind),
		Key:  event.Key,
		At:   event.At.UTC(),
	})
}

// PrintMessage prints a simple message in JSON format.
func (j *JSONPrinter) PrintMessage(msg string) error {
	return j.encode(messageOutput{Message: msg})
}

func (j *JSONPrinter) encode(v any) error {
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
