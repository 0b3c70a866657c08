package domain

import "time"

// ActivityEntry is an append-only audit record. UserID is nil for entries
// not tied to an account. UserEmail and UserName are joined in on read.
type ActivityEntry struct {
	ID        int64     `json:"id"`
	UserID    *int64    `json:"userId,omitempty"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
	UserEmail string    `json:"email,omitempty"`
	UserName  string    `json:"name,omitempty"`
}
