package model

// Audit actions written by the service.
const (
	ActionSystemInit = "SYSTEM_INIT"
	ActionUserCreate = "USER_CREATE"
	ActionLogin      = "LOGIN"
	ActionLogout     = "LOGOUT"
)

// LogEntry is one line of the audit trail. Entries are kept newest first.
type LogEntry struct {
	ID        string `json:"id"`
	Action    string `json:"action"`
	Details   string `json:"details"`
	Timestamp string `json:"timestamp"`
	AdminID   string `json:"adminId,omitempty"`
}
