// Package sdk holds the API's wire types and a Go client for them.
package sdk

import (
	"encoding/json"
	"time"
)

// StatusType labels an API response as a success or an error.
type StatusType string

const (
	StatusSuccess StatusType = "success"
	StatusError   StatusType = "error"
)

// ApiResponse is the standard envelope every endpoint returns.
type ApiResponse[T any] struct {
	Status  StatusType `json:"status"`          // Status label
	Code    int        `json:"code"`            // HTTP status code
	Message string     `json:"message"`         // Human-readable message
	Data    T          `json:"data,omitempty"`  // Optional data field for successful responses
	Error   any        `json:"error,omitempty"` // Optional error detail for error responses
}

// AsGinResponse converts the ApiResponse to the (code, body) pair gin expects.
func (r ApiResponse[T]) AsGinResponse() (int, any) {
	return r.Code, r
}

// AsJSON renders the ApiResponse as a JSON string.
func (r ApiResponse[T]) AsJSON() (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func NewSuccessResponse[T any](message string, data T) ApiResponse[T] {
	return ApiResponse[T]{
		Status:  StatusSuccess,
		Code:    200,
		Message: message,
		Data:    data,
	}
}

func NewErrorResponse(code int, message string, err any) ApiResponse[any] {
	resp := ApiResponse[any]{
		Status:  StatusError,
		Code:    code,
		Message: message,
	}
	if e, ok := err.(error); ok {
		resp.Error = e.Error()
	} else {
		resp.Error = err
	}
	return resp
}

/** Requests */

// CreateConversationRequest is the body for registering a new learning
// session. Transcript may be pre-populated by the caller or left empty to be
// fetched on first question.
type CreateConversationRequest struct {
	Title      string `json:"title"`
	SourceURL  string `json:"source_url" binding:"required"`
	Transcript string `json:"transcript"`
}

// AskRequest is the body for asking a question about a video. Identifier is
// either a conversation UUID or a source reference; SourceURL is only needed
// the first time a transcript-less conversation is used.
type AskRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Question   string `json:"question" binding:"required"`
	SourceURL  string `json:"source_url"`
}

/** Responses */

// Turn is one question/answer exchange in a conversation's chat log.
type Turn struct {
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Timestamp time.Time `json:"timestamp"`
}

// AskResponse carries the generated answer and the full updated chat log.
type AskResponse struct {
	Answer string `json:"answer"`
	Chat   []Turn `json:"chat"`
}

// Conversation is the wire form of a stored learning session.
type Conversation struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	UserID     string    `json:"user_id"`
	Title      string    `json:"title"`
	SourceURL  string    `json:"source_url"`
	Transcript string    `json:"transcript,omitempty"`
	Chat       []Turn    `json:"chat"`
}

// TranscribeResponse is the payload of the transcript proxy endpoint.
type TranscribeResponse struct {
	Content        string   `json:"content"`
	Lang           string   `json:"lang,omitempty"`
	AvailableLangs []string `json:"availableLangs,omitempty"`
}
