package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/SOTO729/Evaluaasiv3-sub001/internal/models"
	apperrors "github.com/SOTO729/Evaluaasiv3-sub001/pkg/errors"
)

// fakeBackend is an in-memory Evaluaasi backend double. It applies
// status filters, bumps last_message on sends and zeroes unread counts
// on read receipts, which is all the engine observes.
type fakeBackend struct {
	mu sync.Mutex

	conversations []models.Conversation
	messages      map[int64][]models.Message
	candidates    []models.Candidate
	nextMsgID     int64
	nextConvID    int64

	listConversationsErr error
	listMessagesErr      error
	sendErr              error
	markReadErr          error

	// sendAs is the sender id stamped on messages created via
	// SendMessage, mimicking the backend resolving the author from the
	// session token.
	sendAs int64

	// beforeListMessages runs inside ListMessages before it returns,
	// letting tests interleave a selection change mid-fetch.
	beforeListMessages func(conversationID int64)

	calls []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		messages:   make(map[int64][]models.Message),
		nextMsgID:  1,
		nextConvID: 1,
	}
}

func (f *fakeBackend) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeBackend) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *fakeBackend) addConversation(c models.Conversation) models.Conversation {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.ID == 0 {
		c.ID = f.nextConvID
	}
	if c.ID >= f.nextConvID {
		f.nextConvID = c.ID + 1
	}
	f.conversations = append(f.conversations, c)
	return c
}

func (f *fakeBackend) addMessage(conversationID, senderID int64, content string) models.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.addMessageLocked(conversationID, senderID, content)
}

func (f *fakeBackend) addMessageLocked(conversationID, senderID int64, content string) models.Message {
	msg := models.Message{
		ID:             f.nextMsgID,
		ConversationID: conversationID,
		SenderUserID:   senderID,
		Content:        content,
		Type:           models.MessageText,
		CreatedAt:      time.Now(),
	}
	f.nextMsgID++
	f.messages[conversationID] = append(f.messages[conversationID], msg)
	for i := range f.conversations {
		if f.conversations[i].ID == conversationID {
			m := msg
			at := msg.CreatedAt
			f.conversations[i].LastMessage = &m
			f.conversations[i].LastMessageAt = &at
		}
	}
	return msg
}

func (f *fakeBackend) setStatus(conversationID int64, status models.ConversationStatus) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.conversations {
		if f.conversations[i].ID == conversationID {
			f.conversations[i].Status = status
		}
	}
}

func (f *fakeBackend) ListConversations(ctx context.Context, token string, filter models.ConversationFilter) (*models.ConversationPage, error) {
	f.record("ListConversations")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listConversationsErr != nil {
		return nil, f.listConversationsErr
	}

	var items []models.Conversation
	for _, c := range f.conversations {
		if filter.Status != "" && filter.Status != models.StatusFilterAll && string(c.Status) != filter.Status {
			continue
		}
		items = append(items, c)
	}
	return &models.ConversationPage{
		Items:   items,
		Total:   len(items),
		Page:    filter.Page,
		PerPage: filter.PerPage,
	}, nil
}

func (f *fakeBackend) CreateConversation(ctx context.Context, token string, input models.NewConversationInput) (*models.Conversation, error) {
	f.record("CreateConversation")
	f.mu.Lock()
	defer f.mu.Unlock()

	conv := models.Conversation{
		ID:       f.nextConvID,
		Subject:  input.Subject,
		Status:   models.StatusOpen,
		Priority: input.Priority,
	}
	if input.CandidateUserID != nil {
		conv.CandidateUserID = *input.CandidateUserID
	}
	f.nextConvID++
	f.conversations = append(f.conversations, conv)
	return &conv, nil
}

func (f *fakeBackend) ListMessages(ctx context.Context, token string, conversationID int64, page, perPage int) (*models.MessagePage, error) {
	f.record("ListMessages")
	f.mu.Lock()
	err := f.listMessagesErr
	items := make([]models.Message, len(f.messages[conversationID]))
	copy(items, f.messages[conversationID])
	hook := f.beforeListMessages
	f.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if hook != nil {
		hook(conversationID)
	}
	return &models.MessagePage{
		Items:   items,
		Total:   len(items),
		Page:    page,
		PerPage: perPage,
	}, nil
}

func (f *fakeBackend) SendMessage(ctx context.Context, token string, conversationID int64, out models.OutgoingMessage) (*models.Message, error) {
	f.record("SendMessage")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	msg := f.addMessageLocked(conversationID, f.sendAs, out.Content)
	return &msg, nil
}

func (f *fakeBackend) MarkRead(ctx context.Context, token string, conversationID, lastMessageID int64) error {
	f.record("MarkRead")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.markReadErr != nil {
		return f.markReadErr
	}
	for i := range f.conversations {
		if f.conversations[i].ID != conversationID {
			continue
		}
		msgs := f.messages[conversationID]
		if len(msgs) == 0 || lastMessageID >= msgs[len(msgs)-1].ID {
			f.conversations[i].UnreadCount = 0
		}
	}
	return nil
}

func (f *fakeBackend) ChangeStatus(ctx context.Context, token string, conversationID int64, status models.ConversationStatus) (*models.Conversation, error) {
	f.record("ChangeStatus")
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.conversations {
		if f.conversations[i].ID == conversationID {
			f.conversations[i].Status = status
			conv := f.conversations[i]
			return &conv, nil
		}
	}
	return nil, apperrors.NotFound("conversation not found")
}

func (f *fakeBackend) SearchCandidates(ctx context.Context, token, query string) ([]models.Candidate, error) {
	f.record("SearchCandidates")
	f.mu.Lock()
	defer f.mu.Unlock()

	if query == "" {
		out := make([]models.Candidate, len(f.candidates))
		copy(out, f.candidates)
		return out, nil
	}
	var out []models.Candidate
	for _, cand := range f.candidates {
		if containsFold(cand.FullName, query) || containsFold(cand.Email, query) || containsFold(cand.Username, query) {
			out = append(out, cand)
		}
	}
	return out, nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
