package chat

import (
	"context"

	"github.com/SOTO729/Evaluaasiv3-sub001/internal/models"
)

// Backend is the slice of the Evaluaasi REST API the chat engine
// consumes. internal/api.Client is the production implementation; tests
// substitute fakes.
type Backend interface {
	ListConversations(ctx context.Context, token string, filter models.ConversationFilter) (*models.ConversationPage, error)
	CreateConversation(ctx context.Context, token string, input models.NewConversationInput) (*models.Conversation, error)
	ListMessages(ctx context.Context, token string, conversationID int64, page, perPage int) (*models.MessagePage, error)
	SendMessage(ctx context.Context, token string, conversationID int64, out models.OutgoingMessage) (*models.Message, error)
	MarkRead(ctx context.Context, token string, conversationID, lastMessageID int64) error
	ChangeStatus(ctx context.Context, token string, conversationID int64, status models.ConversationStatus) (*models.Conversation, error)
	SearchCandidates(ctx context.Context, token, query string) ([]models.Candidate, error)
}
