package domain

import (
	"time"

	"github.com/segmentio/ksuid"
)

// ReplyRef is a denormalized preview of the message being replied to.
// When the target is deleted only Deleted flips; the preview fields stay so
// the client can degrade gracefully instead of dangling.
type ReplyRef struct {
	ID      string `json:"id"`
	Author  string `json:"author"`
	Text    string `json:"text"`
	Avatar  string `json:"avatar,omitempty"`
	Deleted bool   `json:"deleted,omitempty"`
}

// Message is one entry of a text-channel log. Author name and avatar are
// snapshots taken at send time.
type Message struct {
	ID        string              `json:"id"`
	AuthorID  UserID              `json:"authorId"`
	Author    string              `json:"author"`
	Avatar    string              `json:"avatar,omitempty"`
	Text      string              `json:"text"`
	ReplyTo   *ReplyRef           `json:"replyTo,omitempty"`
	Reactions map[string][]UserID `json:"reactions,omitempty"`
	Edited    bool                `json:"edited,omitempty"`
	EditedAt  time.Time           `json:"editedAt,omitempty"`
	Time      time.Time           `json:"time"`
}

// NewMessage allocates a ksuid id: k-sortable, so logs stay in send order,
// and globally unique across channels.
func NewMessage(author *User, text string, replyTo *ReplyRef) *Message {
	return &Message{
		ID:       ksuid.New().String(),
		AuthorID: author.ID,
		Author:   author.Name,
		Avatar:   author.Avatar,
		Text:     text,
		ReplyTo:  replyTo,
		Time:     time.Now(),
	}
}

// AddReaction records uid under emoji; duplicate reactions are no-ops.
func (m *Message) AddReaction(emoji string, uid UserID) bool {
	if m.Reactions == nil {
		m.Reactions = make(map[string][]UserID)
	}
	for _, id := range m.Reactions[emoji] {
		if id == uid {
			return false
		}
	}
	m.Reactions[emoji] = append(m.Reactions[emoji], uid)
	return true
}

// RemoveReaction drops uid from emoji, removing the emoji key entirely when
// its user set becomes empty.
func (m *Message) RemoveReaction(emoji string, uid UserID) bool {
	users := m.Reactions[emoji]
	for i, id := range users {
		if id == uid {
			users = append(users[:i], users[i+1:]...)
			if len(users) == 0 {
				delete(m.Reactions, emoji)
			} else {
				m.Reactions[emoji] = users
			}
			return true
		}
	}
	return false
}
