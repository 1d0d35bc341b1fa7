// Package memory provides in-memory implementations of the storage ports.
// Used for tests and for ephemeral runs where persistence is not wanted.
// All stores are safe for concurrent use.
package memory
