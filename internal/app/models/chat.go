package models

import "time"

// ChatThread is a conversation between a post author and one other user about that post.
type ChatThread struct {
	BaseEntity     `yaml:",inline"`
	CampusID       string           `json:"campus_id" yaml:"campus_id"`
	PostID         string           `json:"post_id" yaml:"post_id"`
	ParticipantIDs []string         `json:"participant_ids" yaml:"participant_ids"`
	Status         ChatThreadStatus `json:"status" yaml:"status"`
	LastMessageAt  *time.Time       `json:"last_message_at" yaml:"last_message_at,omitempty"`
}

// HasParticipant reports whether userID takes part in the thread.
func (t *ChatThread) HasParticipant(userID string) bool {
	for _, id := range t.ParticipantIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// SamePair reports whether the thread is between exactly a and b, in either order.
func (t *ChatThread) SamePair(a, b string) bool {
	if len(t.ParticipantIDs) != 2 {
		return false
	}
	x, y := t.ParticipantIDs[0], t.ParticipantIDs[1]
	return (x == a && y == b) || (x == b && y == a)
}

// ActivityAt is the last message time, or creation time for a silent thread.
func (t *ChatThread) ActivityAt() time.Time {
	if t.LastMessageAt != nil {
		return *t.LastMessageAt
	}
	return t.CreatedAt
}

func (t *ChatThread) Clone() *ChatThread {
	c := *t
	c.DeletedAt = cloneTime(t.DeletedAt)
	c.LastMessageAt = cloneTime(t.LastMessageAt)
	c.ParticipantIDs = append([]string(nil), t.ParticipantIDs...)
	return &c
}

// ChatMessage is a single message within a thread.
type ChatMessage struct {
	BaseEntity `yaml:",inline"`
	CampusID   string `json:"campus_id" yaml:"campus_id"`
	ThreadID   string `json:"thread_id" yaml:"thread_id"`
	SenderID   string `json:"sender_id" yaml:"sender_id"`
	Body       string `json:"body" yaml:"body"`
	IsRead     bool   `json:"is_read" yaml:"is_read"`
}

func (m *ChatMessage) Clone() *ChatMessage {
	c := *m
	c.DeletedAt = cloneTime(m.DeletedAt)
	return &c
}
