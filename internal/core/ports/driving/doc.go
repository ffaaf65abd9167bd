// Package driving defines the interfaces external actors use to drive
// the core.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
// The CLI, TUI, and MCP adapters all depend on these interfaces, and
// core services implement them.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driving
