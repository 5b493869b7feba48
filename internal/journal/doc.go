// Package journal records every processed command line in PostgreSQL.
//
// A Journal is a termquest.Listener. Each ExecutionEvent becomes one row in
// termquest_command_event, which Open creates if it does not exist. Inserts
// are bounded by a short timeout and retried on transient errors; a failed
// insert is returned to the processor, which logs it and carries on.
package journal
