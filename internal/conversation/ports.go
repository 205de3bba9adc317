package conversation

import (
	"context"

	"github.com/google/uuid"
)

// Store is the persistence surface the engine depends on. The gorm
// implementation lives in internal/stores/conversation.
type Store interface {
	// FindByID returns the conversation with the given ID, or ErrNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*Conversation, error)

	// FindBySourceRef returns the single conversation whose source URL equals
	// or contains ref. Zero matches yield ErrNotFound, more than one
	// ErrAmbiguousReference.
	FindBySourceRef(ctx context.Context, ref string) (*Conversation, error)

	// UpdateTranscript persists text as the conversation's transcript. The
	// write only lands while the stored transcript is still null, so a
	// populated transcript is never overwritten.
	UpdateTranscript(ctx context.Context, id uuid.UUID, text string) error

	// AppendTurn appends one turn to the conversation's chat log and reports
	// how many rows the write affected. Zero means the conversation no longer
	// exists.
	AppendTurn(ctx context.Context, id uuid.UUID, turn Turn) (int64, error)
}

// TranscriptProvider converts a video source reference into plain text.
type TranscriptProvider interface {
	Transcript(ctx context.Context, sourceURL string) (string, error)
}

// AnswerProvider generates an answer to a question given a transcript as
// context.
type AnswerProvider interface {
	Answer(ctx context.Context, transcript, question string) (string, error)
}
