// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services are pure Go with no CGO or external state; each operation is
// request-scoped and the store's transaction mechanism is the sole
// concurrency-control boundary.
package services
