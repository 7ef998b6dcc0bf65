// internal/models/chat.go
package models

import "time"

// ChatTurn is one persisted exchange. Turns are append-only.
type ChatTurn struct {
	AgentID   int64     `json:"-"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

type Agent struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"createdAt"`
}
