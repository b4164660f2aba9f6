package app

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/reks-G/Mrdomsetos/internal/domain"
)

// MessageLogLimit bounds each text-channel log; the oldest entry is dropped
// when the cap is exceeded.
const MessageLogLimit = 100

// DMHistoryLimit bounds each direct-message pair history.
const DMHistoryLimit = 200

var ErrMessageNotFound = errors.New("message not found")

// AppendMessage adds a message to a room channel log with the author
// profile snapshotted at send time.
func (m *Rooms) AppendMessage(author *domain.User, id domain.RoomID, chID domain.ChannelID, text string, replyTo *domain.ReplyRef) (*domain.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	if !r.IsMember(author.ID) {
		return nil, ErrForbidden
	}
	if _, ok := r.TextChannel(chID); !ok {
		return nil, domain.ErrChannelNotFound
	}
	msg := domain.NewMessage(author, text, replyTo)
	log := append(r.Messages[chID], msg)
	if len(log) > MessageLogLimit {
		log = log[1:]
	}
	r.Messages[chID] = log
	return msg, nil
}

func (m *Rooms) EditMessage(uid domain.UserID, id domain.RoomID, chID domain.ChannelID, msgID, text string) (*domain.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	msg, ok := findMessage(r.Messages[chID], msgID)
	if !ok {
		return nil, ErrMessageNotFound
	}
	if msg.AuthorID != uid {
		return nil, ErrForbidden
	}
	msg.Text = text
	msg.Edited = true
	msg.EditedAt = timeNow()
	return msg, nil
}

// DeleteMessage removes the message from the log and flips the deleted flag
// on every remaining message replying to it, so reply previews degrade
// instead of dangling. Author, owner or ManageMessages may delete.
func (m *Rooms) DeleteMessage(uid domain.UserID, id domain.RoomID, chID domain.ChannelID, msgID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		return domain.ErrRoomNotFound
	}
	msgs := r.Messages[chID]
	idx := -1
	for i, msg := range msgs {
		if msg.ID == msgID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrMessageNotFound
	}
	if msgs[idx].AuthorID != uid && !r.HasPermission(uid, domain.PermManageMessages) {
		return ErrForbidden
	}
	msgs = append(msgs[:idx], msgs[idx+1:]...)
	for _, msg := range msgs {
		if msg.ReplyTo != nil && msg.ReplyTo.ID == msgID {
			msg.ReplyTo.Deleted = true
		}
	}
	r.Messages[chID] = msgs
	return nil
}

func (m *Rooms) AddReaction(uid domain.UserID, id domain.RoomID, chID domain.ChannelID, msgID, emoji string) (*domain.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	if !r.IsMember(uid) {
		return nil, ErrForbidden
	}
	msg, ok := findMessage(r.Messages[chID], msgID)
	if !ok {
		return nil, ErrMessageNotFound
	}
	if !msg.AddReaction(emoji, uid) {
		return nil, nil
	}
	return msg, nil
}

func (m *Rooms) RemoveReaction(uid domain.UserID, id domain.RoomID, chID domain.ChannelID, msgID, emoji string) (*domain.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	msg, ok := findMessage(r.Messages[chID], msgID)
	if !ok {
		return nil, ErrMessageNotFound
	}
	if !msg.RemoveReaction(emoji, uid) {
		return nil, nil
	}
	return msg, nil
}

func (m *Rooms) ChannelMessages(id domain.RoomID, chID domain.ChannelID) []*domain.Message {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.rooms[id]; ok {
		return append([]*domain.Message(nil), r.Messages[chID]...)
	}
	return nil
}

// RefreshAuthor rewrites the author snapshot on the user's past messages
// after a profile change.
func (m *Rooms) RefreshAuthor(uid domain.UserID, name, avatar string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rooms {
		if !r.IsMember(uid) {
			continue
		}
		for _, msgs := range r.Messages {
			for _, msg := range msgs {
				if msg.AuthorID == uid {
					msg.Author = name
					msg.Avatar = avatar
				}
			}
		}
	}
}

func findMessage(msgs []*domain.Message, id string) (*domain.Message, bool) {
	for _, msg := range msgs {
		if msg.ID == id {
			return msg, true
		}
	}
	return nil, false
}

// DMs holds direct-message history per identity pair.
type DMs struct {
	mu    sync.RWMutex
	pairs map[string][]*domain.Message
}

func NewDMs() *DMs {
	return &DMs{pairs: make(map[string][]*domain.Message)}
}

// DMKey is order-independent so both sides address the same history.
func DMKey(a, b domain.UserID) string {
	ids := []string{string(a), string(b)}
	sort.Strings(ids)
	return strings.Join(ids, ":")
}

func (d *DMs) Append(author *domain.User, to domain.UserID, text string) *domain.Message {
	msg := domain.NewMessage(author, text, nil)
	key := DMKey(author.ID, to)
	d.mu.Lock()
	history := append(d.pairs[key], msg)
	if len(history) > DMHistoryLimit {
		history = history[1:]
	}
	d.pairs[key] = history
	d.mu.Unlock()
	return msg
}

func (d *DMs) History(a, b domain.UserID) []*domain.Message {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]*domain.Message(nil), d.pairs[DMKey(a, b)]...)
}

func (d *DMs) Export() map[string][]*domain.Message {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make(map[string][]*domain.Message, len(d.pairs))
	for k, v := range d.pairs {
		out[k] = v
	}
	return out
}

func (d *DMs) Restore(pairs map[string][]*domain.Message) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for k, v := range pairs {
		d.pairs[k] = v
	}
}
