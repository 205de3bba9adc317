package conversation

import "errors"

// The error taxonomy the HTTP layer maps onto status codes. Provider failures
// during answer generation are deliberately absent: they degrade into a
// fallback turn instead of surfacing to the caller.
var (
	// ErrNotFound means the identifier resolved to no conversation.
	ErrNotFound = errors.New("conversation not found")

	// ErrAmbiguousReference means a source reference matched more than one
	// conversation. The match is never resolved by picking one arbitrarily.
	ErrAmbiguousReference = errors.New("source reference matches multiple conversations")

	// ErrMissingSourceReference means the transcript is absent and the caller
	// supplied no source hint to fetch it with.
	ErrMissingSourceReference = errors.New("missing source reference to fetch transcription")

	// ErrTranscriptUnavailable means the upstream transcript fetch failed.
	// Nothing is persisted, so a later call retries the fetch.
	ErrTranscriptUnavailable = errors.New("transcript unavailable")

	// ErrConversationVanished means a store update affected zero rows because
	// the conversation was deleted concurrently.
	ErrConversationVanished = errors.New("conversation vanished during update")
)
