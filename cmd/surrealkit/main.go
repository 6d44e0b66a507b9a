// Package main provides the surrealkit CLI.
//
// The CLI supports:
//   - generate tables: emit TableName/TableFields methods for annotated structs
//   - query: build a SELECT with the string query builder and run or print it
//   - doctor: run connectivity and database health checks
//   - config show: print the effective configuration
//   - version: print build information
//
// Usage:
//
//	surrealkit [flags] <command>
//
// Commands that talk to the database read database.* from surrealkit.yaml or
// SURREALKIT_DATABASE_* environment variables.
package main

func main() {
	Execute()
}
