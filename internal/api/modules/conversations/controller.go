package conversations

import (
	"context"
	"errors"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/louenes/lectura/internal/auth"
	"github.com/louenes/lectura/internal/conversation"
	"github.com/louenes/lectura/pkg/sdk"
)

// youtubeURLPattern is the source URL shape accepted at ingestion.
var youtubeURLPattern = regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com/watch\?v=|youtu\.be/)[\w-]+`)

// Asker is the orchestrator entry point the module exposes over HTTP.
type Asker interface {
	Ask(ctx context.Context, userID, identifier, question, sourceHint string) (string, conversation.ChatLog, error)
}

// Store is the slice of the conversation store this module needs.
type Store interface {
	Create(ctx context.Context, conv *conversation.Conversation) error
	FindByID(ctx context.Context, id uuid.UUID) (*conversation.Conversation, error)
	ListByUser(ctx context.Context, userID string) ([]conversation.Conversation, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Controller handles the conversations routes.
type Controller struct {
	asker  Asker
	store  Store
	logger *zap.Logger
}

// NewController creates a controller with injected collaborators.
func NewController(asker Asker, store Store, logger *zap.Logger) *Controller {
	return &Controller{asker: asker, store: store, logger: logger}
}

// CreateConversation handles POST requests to register a new learning session
func (ctrl *Controller) CreateConversation(c *gin.Context) {
	var req sdk.CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Could not parse request body", err).AsGinResponse())
		return
	}

	if !youtubeURLPattern.MatchString(req.SourceURL) {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Not a valid YouTube URL", nil).AsGinResponse())
		return
	}

	var transcript *string
	if req.Transcript != "" {
		transcript = &req.Transcript
	}
	conv := conversation.New(auth.UserID(c), req.Title, req.SourceURL, transcript)

	if err := ctrl.store.Create(c.Request.Context(), conv); err != nil {
		ctrl.logger.Error("failed to create conversation", zap.Error(err))
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to create conversation", err).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccessResponse("Conversation created successfully", toSDKConversation(conv)).AsGinResponse())
}

// ListConversations handles GET requests for the caller's conversations
func (ctrl *Controller) ListConversations(c *gin.Context) {
	convs, err := ctrl.store.ListByUser(c.Request.Context(), auth.UserID(c))
	if err != nil {
		ctrl.logger.Error("failed to list conversations", zap.Error(err))
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to list conversations", err).AsGinResponse())
		return
	}

	out := make([]sdk.Conversation, 0, len(convs))
	for i := range convs {
		out = append(out, toSDKConversation(&convs[i]))
	}

	c.JSON(sdk.NewSuccessResponse("Conversations retrieved successfully", out).AsGinResponse())
}

// GetConversation handles GET requests for one conversation by UUID
func (ctrl *Controller) GetConversation(c *gin.Context) {
	conv, ok := ctrl.ownedConversation(c)
	if !ok {
		return
	}

	c.JSON(sdk.NewSuccessResponse("Conversation retrieved successfully", toSDKConversation(conv)).AsGinResponse())
}

// DeleteConversation handles DELETE requests to remove a conversation
func (ctrl *Controller) DeleteConversation(c *gin.Context) {
	conv, ok := ctrl.ownedConversation(c)
	if !ok {
		return
	}

	if err := ctrl.store.Delete(c.Request.Context(), conv.ID); err != nil {
		ctrl.logger.Error("failed to delete conversation", zap.Error(err))
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to delete conversation", err).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccessResponse[any]("Conversation deleted successfully", nil).AsGinResponse())
}

// Ask handles POST requests that ask a question about a video. Provider
// degradation is not an error here: the response then carries a fallback
// answer inside a normal-looking turn.
func (ctrl *Controller) Ask(c *gin.Context) {
	var req sdk.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Could not parse request body", err).AsGinResponse())
		return
	}

	answer, chat, err := ctrl.asker.Ask(c.Request.Context(), auth.UserID(c), req.Identifier, req.Question, req.SourceURL)
	if err != nil {
		ctrl.respondAskError(c, err)
		return
	}

	c.JSON(sdk.NewSuccessResponse("Question answered successfully", sdk.AskResponse{
		Answer: answer,
		Chat:   toSDKTurns(chat),
	}).AsGinResponse())
}

// respondAskError maps the engine's error taxonomy onto HTTP status codes.
func (ctrl *Controller) respondAskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, conversation.ErrNotFound),
		errors.Is(err, conversation.ErrConversationVanished):
		c.JSON(sdk.NewErrorResponse(http.StatusNotFound, "Conversation not found", err).AsGinResponse())
	case errors.Is(err, conversation.ErrAmbiguousReference):
		c.JSON(sdk.NewErrorResponse(http.StatusNotFound, "Source reference is ambiguous", err).AsGinResponse())
	case errors.Is(err, conversation.ErrMissingSourceReference):
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Missing source URL to fetch transcription", err).AsGinResponse())
	case errors.Is(err, conversation.ErrTranscriptUnavailable):
		c.JSON(sdk.NewErrorResponse(http.StatusBadGateway, "Failed to fetch transcription", err).AsGinResponse())
	default:
		ctrl.logger.Error("ask failed", zap.Error(err))
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to process question", err).AsGinResponse())
	}
}

// ownedConversation parses the :id parameter, loads the conversation and
// enforces that it belongs to the caller. It writes the error response itself
// and reports success through the bool.
func (ctrl *Controller) ownedConversation(c *gin.Context) (*conversation.Conversation, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Invalid conversation ID", err).AsGinResponse())
		return nil, false
	}

	conv, err := ctrl.store.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, conversation.ErrNotFound) {
			c.JSON(sdk.NewErrorResponse(http.StatusNotFound, "Conversation not found", err).AsGinResponse())
		} else {
			ctrl.logger.Error("failed to get conversation", zap.Error(err))
			c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to get conversation", err).AsGinResponse())
		}
		return nil, false
	}

	if conv.UserID != auth.UserID(c) {
		c.JSON(sdk.NewErrorResponse(http.StatusNotFound, "Conversation not found", nil).AsGinResponse())
		return nil, false
	}

	return conv, true
}

// Helper method to convert a stored conversation to its wire form
func toSDKConversation(conv *conversation.Conversation) sdk.Conversation {
	out := sdk.Conversation{
		ID:        conv.ID.String(),
		CreatedAt: conv.CreatedAt,
		UpdatedAt: conv.UpdatedAt,
		UserID:    conv.UserID,
		Title:     conv.Title,
		SourceURL: conv.SourceURL,
		Chat:      toSDKTurns(conv.Chat),
	}
	if conv.Transcript != nil {
		out.Transcript = *conv.Transcript
	}
	return out
}

// Helper method to convert a chat log to its wire form
func toSDKTurns(chat conversation.ChatLog) []sdk.Turn {
	turns := make([]sdk.Turn, 0, len(chat))
	for _, t := range chat {
		turns = append(turns, sdk.Turn{
			Question:  t.Question,
			Answer:    t.Answer,
			Timestamp: t.Timestamp,
		})
	}
	return turns
}
