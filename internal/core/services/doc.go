// Package services implements the driving port interfaces.
// Services contain the core business logic: index building and
// query scoring. They orchestrate calls to driven ports but are
// pure Go with no I/O of their own.
package services
