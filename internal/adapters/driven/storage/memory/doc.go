// Package memory provides in-memory implementations of the driven ports.
// They back the service and CLI tests and mirror the SQLite adapter's
// semantics, including case-insensitive substring matching.
package memory
