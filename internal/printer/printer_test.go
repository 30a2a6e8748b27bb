package printer_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/habits/internal/printer"
	"github.com/slok/habits/pkg/lib"
)

func tasksFixture() []lib.Task {
	return []lib.Task{
		{Key: "sharpen-mind", Title: "Sharpen your mind", Total: 1, Points: 15, Icon: "🧠", Category: lib.CategoryMind, Duration: "1–2 min", Streak: "7-day streak"},
		{Key: "walk", Title: "Take a 15-minute walk", Completed: 3, Total: 7, Points: 60},
	}
}

func TestTablePrinterPrintTasks(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintTasks(tasksFixture())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "KEY"))
	assert.Contains(t, lines[1], "🧠 Sharpen your mind")
	assert.Contains(t, lines[1], "0/1 (0%)")
	assert.Contains(t, lines[2], "[####------]")
	assert.Contains(t, lines[2], "3/7 (42%)")
}

func TestTablePrinterPrintTasksEmpty(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintTasks(nil)
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestJSONPrinterPrintTasks(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewJSONPrinter(&buf)

	err := p.PrintTasks(tasksFixture())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"key": "sharpen-mind"`)
	assert.Contains(t, out, `"category": "Mind"`)
	assert.Contains(t, out, `"completed": 3`)
	assert.Contains(t, out, `"done": false`)
	assert.NotContains(t, out, `"auto_tracked"`)
}

func TestTablePrinterPrintLedger(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintLedger([]lib.LedgerEntry{
		{ID: "01HZX", Amount: 25, Reason: lib.LedgerReasonTaskProgress, TaskKey: "steps", Balance: 25, CreatedAt: time.Now()},
		{ID: "01HZY", Amount: -10, Reason: lib.LedgerReasonAdjustment, Balance: 15, CreatedAt: time.Now()},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "+25")
	assert.Contains(t, lines[1], "task-progress")
	assert.Contains(t, lines[2], "-10")
	assert.Contains(t, lines[2], " - ")
}

func TestTablePrinterPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintSummary(lib.Summary{
		TotalTasks:       3,
		CompletedTasks:   1,
		RemainingTasks:   2,
		TotalCompletions: 4,
		ProgressPercent:  33,
		CompletionValue:  25,
		Coins:            37,
		CurrentSteps:     4820,
		CategoryCounts:   map[lib.Category]int{lib.CategorySoul: 1, lib.CategoryBody: 1, lib.CategoryMind: 1},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Tasks:       1/3 done, 2 remaining")
	assert.Contains(t, out, "Progress:    [###-------] 33%")
	assert.Contains(t, out, "Completions: 4")
	assert.Contains(t, out, "Coins:       37")
	assert.Less(t, strings.Index(out, "Body:"), strings.Index(out, "Mind:"))
	assert.Less(t, strings.Index(out, "Mind:"), strings.Index(out, "Soul:"))
}

func TestJSONPrinterPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewJSONPrinter(&buf)

	err := p.PrintSummary(lib.Summary{
		TotalTasks:       3,
		CompletedTasks:   2,
		RemainingTasks:   1,
		TotalCompletions: 5,
		ProgressPercent:  67,
		CategoryCounts:   map[lib.Category]int{lib.CategoryMind: 3},
	})
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, float64(5), got["total_completions"])
	assert.Equal(t, float64(67), got["progress_percent"])
	assert.Equal(t, map[string]any{"Mind": float64(3)}, got["category_counts"])
}

func TestPrintEvent(t *testing.T) {
	at := time.Date(2026, 1, 30, 10, 15, 30, 0, time.UTC)

	tests := map[string]struct {
		newPrinter func(*bytes.Buffer) printer.Printer
		event      lib.Event
		exp        string
	}{
		"Table event with key.": {
			newPrinter: func(b *bytes.Buffer) printer.Printer { return printer.NewTablePrinter(b) },
			event:      lib.Event{Kind: lib.EventTaskProgressed, Key: "steps", At: at},
			exp:        "[2026-01-30 10:15:30 UTC] task-progressed steps\n",
		},
		"Table event without key.": {
			newPrinter: func(b *bytes.Buffer) printer.Printer { return printer.NewTablePrinter(b) },
			event:      lib.Event{Kind: lib.EventCoinsUpdated, At: at},
			exp:        "[2026-01-30 10:15:30 UTC] coins-updated\n",
		},
		"JSON event.": {
			newPrinter: func(b *bytes.Buffer) printer.Printer { return printer.NewJSONPrinter(b) },
			event:      lib.Event{Seq: 3, Kind: lib.EventHabitToggled, Key: "stretch", At: at},
			exp:        `{"seq":3,"kind":"habit-toggled","key":"stretch","at":"2026-01-30T10:15:30Z"}` + "\n",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			err := test.newPrinter(&buf).PrintEvent(test.event)
			require.NoError(t, err)
			assert.Equal(t, test.exp, buf.String())
		})
	}
}

func TestTablePrinterPrintMessage(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintMessage("ok")
	require.NoError(t, err)
	assert.Equal(t, "ok", strings.TrimSpace(buf.String()))
}
