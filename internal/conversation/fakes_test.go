package conversation

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// fakeStore is an in-memory conversation.Store with failure injection.
type fakeStore struct {
	conversations map[uuid.UUID]*Conversation

	transcriptWrites int
	appendedTurns    []Turn

	findErr             error
	updateTranscriptErr error
	appendErr           error
	appendAffected      *int64
}

func newFakeStore(convs ...*Conversation) *fakeStore {
	s := &fakeStore{conversations: make(map[uuid.UUID]*Conversation)}
	for _, c := range convs {
		s.conversations[c.ID] = c
	}
	return s
}

func (s *fakeStore) FindByID(ctx context.Context, id uuid.UUID) (*Conversation, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	conv, ok := s.conversations[id]
	if !ok {
		return nil, ErrNotFound
	}
	return snapshot(conv), nil
}

func (s *fakeStore) FindBySourceRef(ctx context.Context, ref string) (*Conversation, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	var matches []*Conversation
	for _, conv := range s.conversations {
		if conv.SourceURL == ref || strings.Contains(conv.SourceURL, ref) {
			matches = append(matches, conv)
		}
	}
	switch len(matches) {
	case 0:
		return nil, ErrNotFound
	case 1:
		return snapshot(matches[0]), nil
	default:
		return nil, ErrAmbiguousReference
	}
}

func (s *fakeStore) UpdateTranscript(ctx context.Context, id uuid.UUID, text string) error {
	if s.updateTranscriptErr != nil {
		return s.updateTranscriptErr
	}
	if conv, ok := s.conversations[id]; ok && conv.Transcript == nil {
		conv.Transcript = &text
		s.transcriptWrites++
	}
	return nil
}

func (s *fakeStore) AppendTurn(ctx context.Context, id uuid.UUID, turn Turn) (int64, error) {
	if s.appendErr != nil {
		return 0, s.appendErr
	}
	if s.appendAffected != nil {
		return *s.appendAffected, nil
	}
	conv, ok := s.conversations[id]
	if !ok {
		return 0, nil
	}
	conv.Chat = append(conv.Chat, turn)
	s.appendedTurns = append(s.appendedTurns, turn)
	return 1, nil
}

// snapshot returns the conversation as a read would: a copy whose chat log is
// detached from the stored one.
func snapshot(conv *Conversation) *Conversation {
	out := *conv
	out.Chat = append(ChatLog{}, conv.Chat...)
	return &out
}

// fakeTranscriptProvider counts calls and returns a canned transcript.
type fakeTranscriptProvider struct {
	text  string
	err   error
	calls int

	gotSourceURL string
}

func (f *fakeTranscriptProvider) Transcript(ctx context.Context, sourceURL string) (string, error) {
	f.calls++
	f.gotSourceURL = sourceURL
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

// fakeAnswerProvider counts calls and returns a canned answer.
type fakeAnswerProvider struct {
	answer string
	err    error
	calls  int

	gotTranscript string
	gotQuestion   string
}

func (f *fakeAnswerProvider) Answer(ctx context.Context, transcript, question string) (string, error) {
	f.calls++
	f.gotTranscript = transcript
	f.gotQuestion = question
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}
