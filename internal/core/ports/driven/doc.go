// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - ClaimsBackend: the remote claims API (upload, query, documents, history)
//   - SessionStore: client-side state shared by every service for one session
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - FileInspector: drop-zone validation of local files. Without it,
//     uploads trust the caller-provided file description.
//   - SettingsStore: persisted client settings. Without it, defaults apply.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
