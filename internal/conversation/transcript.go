package conversation

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Transcripts guarantees a conversation's transcript is fetched at most once:
// the first successful fetch is persisted, every later request reuses the
// stored value.
type Transcripts struct {
	store    Store
	provider TranscriptProvider
	logger   *zap.Logger
}

// NewTranscripts creates a transcript cache manager.
func NewTranscripts(store Store, provider TranscriptProvider, logger *zap.Logger) *Transcripts {
	return &Transcripts{store: store, provider: provider, logger: logger}
}

// Ensure returns the conversation's transcript, fetching and persisting it on
// first need. sourceHint is the original video reference and is required when
// the transcript has not been fetched yet. On a fetch failure nothing is
// persisted, so the next call retries.
func (t *Transcripts) Ensure(ctx context.Context, conv *Conversation, sourceHint string) (string, error) {
	if conv.HasTranscript() {
		return *conv.Transcript, nil
	}

	if sourceHint == "" {
		return "", ErrMissingSourceReference
	}

	text, err := t.provider.Transcript(ctx, sourceHint)
	if err != nil {
		t.logger.Warn("transcript fetch failed",
			zap.String("conversation_id", conv.ID.String()),
			zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrTranscriptUnavailable, err)
	}
	if text == "" {
		return "", fmt.Errorf("%w: provider returned empty transcript", ErrTranscriptUnavailable)
	}

	if err := t.store.UpdateTranscript(ctx, conv.ID, text); err != nil {
		return "", fmt.Errorf("failed to persist transcript: %w", err)
	}

	// Return the locally fetched value rather than re-reading storage; a
	// concurrent first-fetch may have won the write, that is fine.
	conv.Transcript = &text
	return text, nil
}
