// Package memory provides in-memory implementations of the driven store ports.
//
// The stores back --dry-run, where nothing is written to Notion, and the
// service and transport tests. Nothing survives the process.
package memory
