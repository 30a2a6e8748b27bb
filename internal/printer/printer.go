package printer

import "github.com/slok/habits/pkg/lib"

// Printer knows how to print habits store information in different formats.
type Printer interface {
	PrintTasks(tasks []lib.Task) error
	PrintMyHabits(habits []lib.MyHabit) error
	PrintActivities(activities []lib.AvailableActivity) error
	PrintHabitCatalog(habits []lib.HabitDescriptor) error
	PrintLedger(entries []lib.LedgerEntry) error
	PrintSummary(summary lib.Summary) error
	PrintEvent(event lib.Event) error
	PrintMessage(msg string) error
}
