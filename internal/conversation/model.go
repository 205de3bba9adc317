package conversation

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Conversation is the durable record linking a video, its transcript and the
// Q&A history held about it.
type Conversation struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID    string  `json:"user_id" gorm:"size:255;index"`
	Title     string  `json:"title" gorm:"size:512"`
	// The source URL index is prefix-limited: a full key over 1024 utf8mb4
	// chars would exceed InnoDB's 3072-byte index limit and break migration.
	SourceURL string  `json:"source_url" gorm:"size:1024;index:,length:255;column:source_url"`
	Chat      ChatLog `json:"chat" gorm:"type:json"`

	// Transcript is nil until the first successful fetch. Once set it is
	// treated as immutable cache content and never re-fetched.
	Transcript *string `json:"transcript,omitempty" gorm:"type:longtext"`
}

// Turn is one question/answer exchange in a conversation's chat log.
type Turn struct {
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatLog is the append-only, chronologically ordered list of turns. It is
// persisted as a single JSON column.
type ChatLog []Turn

// New creates a conversation with a generated UUID. A nil transcript means it
// will be fetched on first use.
func New(userID, title, sourceURL string, transcript *string) *Conversation {
	if title == "" {
		title = "Untitled Video"
	}
	return &Conversation{
		ID:         uuid.New(),
		UserID:     userID,
		Title:      title,
		SourceURL:  sourceURL,
		Transcript: transcript,
		Chat:       ChatLog{},
	}
}

// HasTranscript reports whether the transcript cache is populated.
func (c *Conversation) HasTranscript() bool {
	return c.Transcript != nil && *c.Transcript != ""
}

// Value implements the driver.Valuer interface for database storage
func (l ChatLog) Value() (driver.Value, error) {
	if l == nil {
		l = ChatLog{}
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface for database retrieval
func (l *ChatLog) Scan(value any) error {
	if value == nil {
		*l = ChatLog{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into ChatLog", value)
	}

	if len(bytes) == 0 {
		*l = ChatLog{}
		return nil
	}

	return json.Unmarshal(bytes, l)
}
