// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Each service owns a little local state (loading flag, last error, last
// result) and writes shared state only through driven.SessionStore. Every
// write that follows a network call first checks that the caller's
// context is still live.
package services
