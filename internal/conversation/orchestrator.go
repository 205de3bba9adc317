package conversation

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const (
	// FallbackAnswer is recorded in the chat log when the answer provider
	// fails outright. The turn is still appended so the log stays a complete
	// audit trail.
	FallbackAnswer = "Sorry, there was an error processing your request."

	// EmptyAnswerFallback is recorded when the provider succeeds but returns
	// no usable content.
	EmptyAnswerFallback = "Sorry, I could not generate an answer."
)

// Orchestrator is the engine's entry point: it resolves a conversation,
// guarantees its transcript is available, asks the answer provider and appends
// the resulting turn to the chat log.
type Orchestrator struct {
	store       Store
	resolver    *Resolver
	transcripts *Transcripts
	answers     AnswerProvider
	logger      *zap.Logger

	now func() time.Time
}

// NewOrchestrator wires the engine together from injected collaborators.
func NewOrchestrator(store Store, transcripts TranscriptProvider, answers AnswerProvider, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		store:       store,
		resolver:    NewResolver(store),
		transcripts: NewTranscripts(store, transcripts, logger),
		answers:     answers,
		logger:      logger,
		now:         time.Now,
	}
}

// Ask answers question against the transcript of the conversation named by
// identifier and appends the exchange to its chat log. The conversation must
// belong to userID; one owned by anyone else is reported as not found, so the
// identifier space leaks nothing across users. sourceHint is only needed the
// first time a transcript-less conversation is used. It returns the answer
// and the full updated chat log.
//
// Resolution and transcript failures are fatal to this call. Answer-provider
// failures are not: the call still succeeds and the turn carries a fallback
// answer, so provider outages never break conversational continuity.
func (o *Orchestrator) Ask(ctx context.Context, userID, identifier, question, sourceHint string) (string, ChatLog, error) {
	conv, err := o.resolver.Resolve(ctx, identifier)
	if err != nil {
		return "", nil, err
	}
	if conv.UserID != userID {
		return "", nil, ErrNotFound
	}

	transcript, err := o.transcripts.Ensure(ctx, conv, sourceHint)
	if err != nil {
		return "", nil, err
	}

	answer, err := o.answers.Answer(ctx, transcript, question)
	if err != nil {
		o.logger.Warn("answer provider failed, recording fallback turn",
			zap.String("conversation_id", conv.ID.String()),
			zap.Error(err))
		answer = FallbackAnswer
	} else if answer == "" {
		answer = EmptyAnswerFallback
	}

	turn := Turn{
		Question:  question,
		Answer:    answer,
		Timestamp: o.now().UTC(),
	}

	affected, err := o.store.AppendTurn(ctx, conv.ID, turn)
	if err != nil {
		return "", nil, fmt.Errorf("failed to append turn: %w", err)
	}
	if affected == 0 {
		return "", nil, ErrConversationVanished
	}

	conv.Chat = append(conv.Chat, turn)
	return answer, conv.Chat, nil
}
