package domain

// User is a read-only reference to a caseworker. User records are owned by the
// external auth system; this service only resolves assignee display names.
type User struct {
	UserID     string  `json:"userID"` // Primary Key (UUID)
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	Department string  `json:"department,omitempty"`
	AgentID    *string `json:"agentID,omitempty"`
}
