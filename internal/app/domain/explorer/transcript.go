package explorer

import (
	"fmt"
	"time"

	"github.com/FACorreiaa/go-worldlens/internal/app/models"
)

// Transcript is the session chat log. Messages live in an id-keyed map plus
// an insertion-order index, so resolving a placeholder by id can never
// disturb ordering, no matter how many messages were appended in between.
// Not safe for concurrent use on its own; the owning session's lock guards it.
type Transcript struct {
	byID  map[string]*models.ChatMessage
	order []string
	seq   int
}

func NewTranscript() *Transcript {
	return &Transcript{byID: make(map[string]*models.ChatMessage)}
}

func (t *Transcript) nextID() string {
	t.seq++
	return fmt.Sprintf("%d-%04d", time.Now().UnixMilli(), t.seq)
}

// Append adds a new message and returns a copy of it, including the
// generated id.
func (t *Transcript) Append(role models.ChatRole, content string) models.ChatMessage {
	return t.AppendMessage(models.ChatMessage{Role: role, Content: content})
}

// AppendMessage adds a prepared message, filling in id and timestamp.
func (t *Transcript) AppendMessage(msg models.ChatMessage) models.ChatMessage {
	msg.ID = t.nextID()
	msg.Timestamp = time.Now()
	t.byID[msg.ID] = &msg
	t.order = append(t.order, msg.ID)
	return msg
}

// SetContent rewrites the content of the message with the given id in place.
// Used for the "loading -> resolved" placeholder transition.
func (t *Transcript) SetContent(id, content string) bool {
	msg, ok := t.byID[id]
	if !ok {
		return false
	}
	msg.Content = content
	return true
}

// Update applies fn to the message with the given id.
func (t *Transcript) Update(id string, fn func(*models.ChatMessage)) bool {
	msg, ok := t.byID[id]
	if !ok {
		return false
	}
	fn(msg)
	return true
}

// Remove deletes the message with the given id.
func (t *Transcript) Remove(id string) bool {
	if _, ok := t.byID[id]; !ok {
		return false
	}
	delete(t.byID, id)
	for i, mid := range t.order {
		if mid == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

// Messages returns the transcript in insertion order.
func (t *Transcript) Messages() []models.ChatMessage {
	out := make([]models.ChatMessage, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, *t.byID[id])
	}
	return out
}

func (t *Transcript) Len() int {
	return len(t.order)
}
