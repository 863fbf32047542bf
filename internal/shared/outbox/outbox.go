package outbox

// Outbox rows are persisted inside the same DB transaction as state changes.
// A worker relay reads pending rows and publishes them to the message bus.
//
// Status values shared by every outbox table in the repository.
const (
	StatusPending = "pending"
	StatusSent    = "sent"
)
