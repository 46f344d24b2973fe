// Package commands contains the operations that change order, payment, print-job
// and menu state.
//
// Each operation is a Command value built through its constructor (which validates
// the input) and a CommandHandler that executes it. Handlers hold no state between
// calls: every write goes straight to the store and status changes are guarded by
// the status the handler observed, so concurrent handlers never need in-process locks.
package commands
