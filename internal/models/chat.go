package models

import "time"

// ConversationStatus is the lifecycle state of a support conversation.
// Transitions between states are role-gated, see internal/chat/guard.go.
type ConversationStatus string

const (
	StatusOpen     ConversationStatus = "open"
	StatusResolved ConversationStatus = "resolved"
	StatusClosed   ConversationStatus = "closed"
)

// StatusFilterAll is accepted by list endpoints to disable status filtering.
const StatusFilterAll = "all"

func (s ConversationStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusResolved, StatusClosed:
		return true
	}
	return false
}

// ConversationPriority is informational only; it never gates behavior.
type ConversationPriority string

const (
	PriorityLow    ConversationPriority = "low"
	PriorityNormal ConversationPriority = "normal"
	PriorityHigh   ConversationPriority = "high"
)

// Conversation is a support thread between a candidate and the support
// team, as served by the Evaluaasi backend. UnreadCount is computed
// server-side from the viewer's read watermark; the client never
// decrements it locally, it only re-fetches.
type Conversation struct {
	ID                    int64                `json:"id"`
	CandidateUserID       int64                `json:"candidate_user_id"`
	AssignedSupportUserID *int64               `json:"assigned_support_user_id,omitempty"`
	Subject               string               `json:"subject,omitempty"`
	Status                ConversationStatus   `json:"status"`
	Priority              ConversationPriority `json:"priority"`
	LastMessage           *Message             `json:"last_message,omitempty"`
	LastMessageAt         *time.Time           `json:"last_message_at,omitempty"`
	UnreadCount           int                  `json:"unread_count"`
	CreatedAt             time.Time            `json:"created_at"`
	UpdatedAt             time.Time            `json:"updated_at"`
}

// MessageType: text or attachment
type MessageType string

const (
	MessageText       MessageType = "text"
	MessageAttachment MessageType = "attachment"
)

// Attachment carries file metadata for attachment messages. Only the URL
// is guaranteed; the rest is best-effort from the upload service.
type Attachment struct {
	URL       string `json:"url"`
	Name      string `json:"name,omitempty"`
	MimeType  string `json:"mime_type,omitempty"`
	SizeBytes int64  `json:"size_bytes,omitempty"`
}

// Message ids are monotonically increasing within a conversation and
// double as the read watermark.
type Message struct {
	ID             int64       `json:"id"`
	ConversationID int64       `json:"conversation_id"`
	SenderUserID   int64       `json:"sender_user_id"`
	Content        string      `json:"content,omitempty"`
	Attachment     *Attachment `json:"attachment,omitempty"`
	Type           MessageType `json:"message_type"`
	CreatedAt      time.Time   `json:"created_at"`
}

// Mine reports whether the message was authored by the given viewer.
// Purely cosmetic (render side), not an authorization check.
func (m Message) Mine(viewerID int64) bool {
	return m.SenderUserID == viewerID
}

// ConversationPage is one page of the conversation list, newest activity
// first.
type ConversationPage struct {
	Items   []Conversation `json:"items"`
	Total   int            `json:"total"`
	Page    int            `json:"page"`
	PerPage int            `json:"per_page"`
}

// MessagePage is one page of a conversation's messages, oldest first.
type MessagePage struct {
	Items   []Message `json:"items"`
	Total   int       `json:"total"`
	Page    int       `json:"page"`
	PerPage int       `json:"per_page"`
}

// ConversationFilter is the list query the chat view is showing.
type ConversationFilter struct {
	Status       string `json:"status"` // open|resolved|closed|all
	Page         int    `json:"page"`
	PerPage      int    `json:"per_page"`
	AssignedToMe bool   `json:"assigned_to_me"`
}

// NewConversationInput is the composer payload. CandidateUserID is
// required for support-like actors and must be absent for candidates
// (the backend infers the owner from the session).
type NewConversationInput struct {
	Subject         string               `json:"subject,omitempty"`
	CandidateUserID *int64               `json:"candidate_user_id,omitempty"`
	Priority        ConversationPriority `json:"priority,omitempty"`
}

// OutgoingMessage is the send payload; exactly one of Content or
// Attachment should be set.
type OutgoingMessage struct {
	Content    string      `json:"content,omitempty"`
	Attachment *Attachment `json:"attachment,omitempty"`
}
