package domain

import "time"

// AuditEntry records a single authentication-related action. Entries back
// the audit panel, which only admins may view.
type AuditEntry struct {
	ID        string    `json:"id,omitempty"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Outcome   string    `json:"outcome"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
