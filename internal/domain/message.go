package domain

import "time"

// Message is a chat line relayed between live room members. The server
// never stores it; ordering is whatever each sender emitted.
type Message struct {
	ID        string    `json:"id"`
	Sender    User      `json:"sender"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
