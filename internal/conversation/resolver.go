package conversation

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// Resolver maps an incoming identifier, either an opaque conversation ID or a
// video source reference, to exactly one stored conversation.
type Resolver struct {
	store Store
}

// NewResolver creates a resolver over the given store.
func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve looks up a conversation. Identifiers that parse as UUIDs resolve by
// exact ID match; anything else resolves by equality-or-containment against
// the stored source URL. Read-only.
func (r *Resolver) Resolve(ctx context.Context, identifier string) (*Conversation, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, ErrNotFound
	}

	if id, err := uuid.Parse(identifier); err == nil {
		return r.store.FindByID(ctx, id)
	}

	return r.store.FindBySourceRef(ctx, identifier)
}
