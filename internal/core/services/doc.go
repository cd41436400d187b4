// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services are pure Go with no external dependencies. They are
// constructed once at startup with their dependencies injected, hold no
// per-request state, and are safe for concurrent callers.
package services
