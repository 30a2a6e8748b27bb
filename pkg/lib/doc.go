// Package lib provides the Go SDK of the habits state store.
//
// A [Store] holds the tracked tasks, the weekly habits, the immutable activity
// catalogs, the coin balance with its ledger and the step count. All the state
// is volatile, it's loaded from a seed when the store is created and lost when
// it's closed.
//
// # Quick Start
//
//	store, err := lib.New(ctx, lib.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
//	res, _ := store.UpdateTaskProgress(ctx, "steps")
//	if res.JustCompleted {
//	    fmt.Println("Task done!")
//	}
//
// # No-ops
//
// Operations on unknown keys, tasks already at their total, duplicated
// additions and the like don't fail. They return a result whose flag
// (Added, Advanced, Toggled, Replaced, Changed) is false and publish nothing.
//
// # Coins
//
// The coin balance is tracked on its own and every change is recorded in the
// ledger ([Store.Ledger]). Every task progress increment credits the task
// points, [Store.ConvertSteps] credits one coin every 400 steps and
// [Store.UpdateCoins] applies manual adjustments. The balance never goes
// negative.
//
// # Change Notification
//
// [Store.Subscribe] registers a callback called with an [Event] after every
// state change, synchronously and before the mutating call returns:
//
//	unsubscribe := store.Subscribe(func(e lib.Event) {
//	    fmt.Println(e.Kind, e.Key)
//	})
//	defer unsubscribe()
//
// Callbacks run once the mutation has finished, they can read snapshots and
// call other store operations. Events carry a sequence number ([Event].Seq)
// and are delivered in that order, one at a time. An event raised from inside
// a callback is delivered after the callback returns. With concurrent
// mutations the goroutine already delivering events delivers the rest, so a
// mutation may return before its own event was delivered.
//
// # Seeds
//
// The default seed carries three tasks (sharpen-mind, steps and meditation),
// some weekly habits and every catalog. Use [Config].SeedFS and
// [Config].SeedPath to load a YAML seed of your own:
//
//	store, _ := lib.New(ctx, lib.Config{
//	    SeedFS:   os.DirFS("/etc/habits"),
//	    SeedPath: "seed.yaml",
//	})
//
// # Error Handling
//
// All methods return errors that can be inspected with [errors.Is]:
//
//   - [ErrNotFound]: Catalog entry does not exist.
//   - [ErrNotValid]: Invalid input, configuration or seed.
//   - [ErrInsufficientCoins]: Debit bigger than the balance (also [ErrNotValid]).
//   - [ErrClosed]: The store was closed.
//
// # Thread Safety
//
// A [Store] is safe for concurrent use from multiple goroutines. Mutations are
// serialized, one read-modify-write at a time.
package lib
