package agent

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Role identifies the sender of a conversation message.
type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// Message is one entry in the conversation transcript.
// The transcript is append-only: messages are never reordered or rewritten,
// only cleared wholesale when the session resets (connect, disconnect,
// onboarding completion).
type Message struct {
	// ID is a ULID. IDs issued by NewMessageID are strictly increasing
	// within a process, so a reply's ID always sorts after the message
	// it answers.
	ID string `json:"id"`

	Role Role   `json:"role"`
	Text string `json:"text"`

	// CreatedAt is the Unix timestamp when the message was appended
	CreatedAt int64 `json:"created_at"`
}

// EntryType distinguishes scheduled events from tasks.
type EntryType string

const (
	EntryEvent EntryType = "event"
	EntryTask  EntryType = "task"
)

// Entry is one agenda item: a calendar event or a task.
// Entries are immutable once fetched; a fresh fetch replaces the whole set.
type Entry struct {
	ID        string    `json:"id"`
	Type      EntryType `json:"type"`
	Title     string    `json:"title"`
	Time      string    `json:"time,omitempty"` // time-of-day display string, may be empty
	Completed bool      `json:"completed"`
}

// Email is a summary of one inbox message.
type Email struct {
	ID      string `json:"id"`
	Subject string `json:"subject"`
	Sender  string `json:"sender"`
	Snippet string `json:"snippet,omitempty"`
	Read    bool   `json:"read"`
}

// Profile describes the connected account.
type Profile struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// idMu guards the shared monotonic entropy source. ulid.Monotonic is not
// safe for concurrent readers, and a shared source is what makes IDs from
// the same millisecond strictly increasing.
var (
	idMu      sync.Mutex
	idEntropy = ulid.Monotonic(rand.Reader, 0)
)

// NewMessageID generates a ULID for a new transcript message.
func NewMessageID() (string, error) {
	idMu.Lock()
	defer idMu.Unlock()
	id, err := ulid.New(ulid.Timestamp(time.Now()), idEntropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
