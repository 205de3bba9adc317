// Package conversations persists conversation records in MySQL using GORM.
package conversations

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/louenes/lectura/internal/conversation"
)

// Store implements conversation.Store plus the create/list/delete operations
// the HTTP surface needs but the engine never calls.
type Store struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewStore opens the database and migrates the conversations table.
func NewStore(databaseURL string, logger *zap.Logger) (*Store, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&conversation.Conversation{}); err != nil {
		return nil, fmt.Errorf("failed to migrate tables: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// Create inserts a new conversation record.
func (s *Store) Create(ctx context.Context, conv *conversation.Conversation) error {
	if conv.ID == uuid.Nil {
		conv.ID = uuid.New()
	}
	if conv.Chat == nil {
		conv.Chat = conversation.ChatLog{}
	}

	if result := s.db.WithContext(ctx).Create(conv); result.Error != nil {
		return fmt.Errorf("failed to create conversation: %w", result.Error)
	}
	return nil
}

// FindByID retrieves a conversation by its primary key.
func (s *Store) FindByID(ctx context.Context, id uuid.UUID) (*conversation.Conversation, error) {
	var conv conversation.Conversation
	result := s.db.WithContext(ctx).First(&conv, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, conversation.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get conversation: %w", result.Error)
	}
	return &conv, nil
}

// FindBySourceRef retrieves the single conversation whose source URL equals or
// contains ref. More than one match is surfaced as an error, never resolved by
// picking one arbitrarily.
func (s *Store) FindBySourceRef(ctx context.Context, ref string) (*conversation.Conversation, error) {
	var convs []conversation.Conversation
	result := s.db.WithContext(ctx).
		Where("source_url = ? OR source_url LIKE ?", ref, "%"+ref+"%").
		Limit(2).
		Find(&convs)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to query conversations: %w", result.Error)
	}

	switch len(convs) {
	case 0:
		return nil, conversation.ErrNotFound
	case 1:
		return &convs[0], nil
	default:
		return nil, conversation.ErrAmbiguousReference
	}
}

// ListByUser returns the user's conversations, newest first.
func (s *Store) ListByUser(ctx context.Context, userID string) ([]conversation.Conversation, error) {
	var convs []conversation.Conversation
	result := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&convs)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", result.Error)
	}
	return convs, nil
}

// UpdateTranscript stores text as the conversation's transcript. The write is
// guarded on the column still being null: a transcript, once populated, is
// never overwritten. Losing the guard race is not an error; the caller keeps
// its locally fetched text.
func (s *Store) UpdateTranscript(ctx context.Context, id uuid.UUID, text string) error {
	result := s.db.WithContext(ctx).
		Model(&conversation.Conversation{}).
		Where("id = ? AND transcript IS NULL", id).
		Update("transcript", text)
	if result.Error != nil {
		return fmt.Errorf("failed to update transcript: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		s.logger.Debug("transcript already populated, keeping stored value",
			zap.String("conversation_id", id.String()))
	}
	return nil
}

// AppendTurn appends turn to the conversation's chat log with a
// read-modify-write on the JSON column. Concurrent appends to the same
// conversation are last-writer-wins on the snapshot each read; see the store
// docs before relying on this under contention.
func (s *Store) AppendTurn(ctx context.Context, id uuid.UUID, turn conversation.Turn) (int64, error) {
	var conv conversation.Conversation
	result := s.db.WithContext(ctx).First(&conv, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read chat log: %w", result.Error)
	}

	updated := append(conv.Chat, turn)
	result = s.db.WithContext(ctx).
		Model(&conversation.Conversation{}).
		Where("id = ?", id).
		Update("chat", updated)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to append turn: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// Delete removes a conversation and its chat log. The engine never calls
// this; it exists for the HTTP surface.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&conversation.Conversation{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete conversation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return conversation.ErrNotFound
	}
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB from gorm.DB: %w", err)
	}
	return sqlDB.Close()
}
