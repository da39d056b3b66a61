package chat

import (
	"context"
	"sync"
	"time"

	"github.com/SOTO729/Evaluaasiv3-sub001/internal/models"
	apperrors "github.com/SOTO729/Evaluaasiv3-sub001/pkg/errors"
	"github.com/SOTO729/Evaluaasiv3-sub001/pkg/logger"
)

// Options tunes a session. Zero values fall back to defaults.
type Options struct {
	PollInterval         time.Duration
	ConversationsPerPage int
	MessagesPerPage      int
}

// Session is one user's live chat view: the conversation and message
// stores, the polling scheduler and the error banner. All user actions
// go through it so that action-triggered refreshes are awaited and the
// UI observes the result before the next timer tick.
type Session struct {
	actor   models.Actor
	token   string
	backend Backend

	conversations *ConversationStore
	messages      *MessageStore
	tracker       *ReadTracker
	composer      *Composer
	scheduler     *Scheduler

	mu        sync.Mutex
	lastError string
	lastUsed  time.Time
}

func NewSession(backend Backend, token string, actor models.Actor, opts Options) *Session {
	perPage := opts.ConversationsPerPage
	if perPage <= 0 {
		perPage = 20
	}

	s := &Session{
		actor:   actor,
		token:   token,
		backend: backend,
	}
	s.conversations = NewConversationStore(backend, token, models.ConversationFilter{
		Status:  models.StatusFilterAll,
		Page:    1,
		PerPage: perPage,
	})
	s.tracker = NewReadTracker(backend, token)
	s.messages = NewMessageStore(backend, token, opts.MessagesPerPage, s.conversations.SelectedID, s.tracker)
	s.composer = NewComposer(backend, token, actor)
	s.scheduler = NewScheduler(opts.PollInterval, s.tick)
	s.touch()
	return s
}

// Actor returns the authenticated viewer.
func (s *Session) Actor() models.Actor { return s.actor }

// Start begins polling. The first sync runs inline so the view is
// populated before the first tick.
func (s *Session) Start(ctx context.Context) {
	if err := s.Refresh(ctx); err != nil {
		logger.Warn().Err(err).Int64("user_id", s.actor.UserID).Msg("Initial chat sync failed")
	}
	s.scheduler.Start(ctx)
}

// Close tears the polling loop down. In-flight fetches are not
// cancelled; their results are fenced out as usual.
func (s *Session) Close() {
	s.scheduler.Stop()
}

// tick is the scheduled sync cycle: conversations first (keeping the
// selection), then the selected conversation's messages. Failures set
// the banner and wait for the next tick.
func (s *Session) tick(ctx context.Context) {
	if err := s.syncOnce(ctx, true); err != nil {
		s.setError(err)
	}
}

func (s *Session) syncOnce(ctx context.Context, keepSelection bool) error {
	if err := s.conversations.Refresh(ctx, keepSelection); err != nil {
		return err
	}
	selected := s.conversations.SelectedID()
	if selected == NoSelection {
		s.messages.Clear()
		return nil
	}
	return s.messages.Load(ctx, selected, 1)
}

// Refresh forces an immediate keep-selection sync, as after a user
// action. Awaited by the caller.
func (s *Session) Refresh(ctx context.Context) error {
	s.touch()
	if err := s.syncOnce(ctx, true); err != nil {
		s.setError(err)
		return err
	}
	s.clearError()
	return nil
}

// SetFilter changes the list query and reloads. A fresh filter never
// tries to preserve the selection; the first result (or nothing) wins.
func (s *Session) SetFilter(ctx context.Context, filter models.ConversationFilter) error {
	s.touch()
	s.conversations.SetFilter(filter)
	if err := s.syncOnce(ctx, false); err != nil {
		s.setError(err)
		return err
	}
	s.clearError()
	return nil
}

// Select switches the active conversation and loads its messages. The
// effective selection may differ from the requested id (fallback-to-
// first policy).
func (s *Session) Select(ctx context.Context, id int64) (int64, error) {
	s.touch()
	effective := s.conversations.Select(id)
	if effective == NoSelection {
		s.messages.Clear()
		return effective, nil
	}
	if err := s.messages.Load(ctx, effective, 1); err != nil {
		s.setError(err)
		return effective, err
	}
	s.clearError()
	return effective, nil
}

// Send posts a message to the selected conversation, then refreshes so
// the new message (and the bumped last_message snapshot) come back from
// the server. The send completes before the refresh is issued.
func (s *Session) Send(ctx context.Context, out models.OutgoingMessage) (*models.Message, error) {
	s.touch()

	conv, ok := s.conversations.Selected()
	if !ok {
		err := apperrors.Validation("no conversation selected")
		s.setError(err)
		return nil, err
	}
	if !CanSend(conv.Status) {
		err := apperrors.Validation("conversation is closed; reopen it to reply")
		s.setError(err)
		return nil, err
	}
	if out.Content == "" && out.Attachment == nil {
		err := apperrors.Validation("message is empty")
		s.setError(err)
		return nil, err
	}

	msg, err := s.backend.SendMessage(ctx, s.token, conv.ID, out)
	if err != nil {
		s.setError(err)
		return nil, err
	}

	if err := s.Refresh(ctx); err != nil {
		// The message is on the server; the next tick will show it.
		return msg, nil
	}
	return msg, nil
}

// ChangeStatus applies a role-gated status transition and refreshes the
// list so status, timestamps and server side effects are observed
// consistently rather than patched locally.
func (s *Session) ChangeStatus(ctx context.Context, conversationID int64, status models.ConversationStatus) error {
	s.touch()

	conv, ok := s.conversations.Get(conversationID)
	if !ok {
		err := apperrors.NotFound("conversation not in current view")
		s.setError(err)
		return err
	}
	if !CanTransition(s.actor.Role, conv.Status, status) {
		err := apperrors.Forbidden("status change not allowed for this role")
		s.setError(err)
		return err
	}

	if _, err := s.backend.ChangeStatus(ctx, s.token, conversationID, status); err != nil {
		s.setError(err)
		return err
	}
	return s.Refresh(ctx)
}

// Create opens a new conversation and makes it the selection, loading
// its (initially empty) message list.
func (s *Session) Create(ctx context.Context, input models.NewConversationInput) (*models.Conversation, error) {
	s.touch()

	conv, err := s.composer.Create(ctx, input)
	if err != nil {
		s.setError(err)
		return nil, err
	}

	if err := s.conversations.Refresh(ctx, true); err != nil {
		s.setError(err)
	}
	s.conversations.ForceSelect(conv.ID)
	if err := s.messages.Load(ctx, conv.ID, 1); err != nil {
		s.setError(err)
		return conv, nil
	}
	s.clearError()
	return conv, nil
}

// SearchCandidates proxies the composer's directory lookup.
func (s *Session) SearchCandidates(ctx context.Context, query string) ([]models.Candidate, error) {
	s.touch()
	hits, err := s.composer.SearchCandidates(ctx, query)
	if err != nil {
		s.setError(err)
		return nil, err
	}
	s.clearError()
	return hits, nil
}

// ConversationsView is the render snapshot of the list pane.
type ConversationsView struct {
	Items       []models.Conversation     `json:"items"`
	Total       int                       `json:"total"`
	UnreadTotal int                       `json:"unread_total"`
	SelectedID  int64                     `json:"selected_id"`
	Filter      models.ConversationFilter `json:"filter"`
	LastError   string                    `json:"last_error,omitempty"`
}

// MessageView decorates a message with the render side.
type MessageView struct {
	models.Message
	Mine bool `json:"mine"`
}

// MessagesView is the render snapshot of the thread pane, including the
// permission flags the UI uses to decide which controls exist.
type MessagesView struct {
	ConversationID int64                       `json:"conversation_id"`
	Items          []MessageView               `json:"items"`
	Total          int                         `json:"total"`
	CanSend        bool                        `json:"can_send"`
	CanResolve     bool                        `json:"can_resolve"`
	CanClose       bool                        `json:"can_close"`
	CanReopen      bool                        `json:"can_reopen"`
	Transitions    []models.ConversationStatus `json:"allowed_transitions"`
	LastError      string                      `json:"last_error,omitempty"`
}

// Conversations returns the current list snapshot.
func (s *Session) Conversations() ConversationsView {
	items, total, unread := s.conversations.Snapshot()
	return ConversationsView{
		Items:       items,
		Total:       total,
		UnreadTotal: unread,
		SelectedID:  s.conversations.SelectedID(),
		Filter:      s.conversations.Filter(),
		LastError:   s.LastError(),
	}
}

// Messages returns the current thread snapshot for the selection.
func (s *Session) Messages() MessagesView {
	convID, msgs, total := s.messages.Snapshot()
	view := MessagesView{
		ConversationID: convID,
		Items:          make([]MessageView, 0, len(msgs)),
		Total:          total,
		LastError:      s.LastError(),
	}
	for _, m := range msgs {
		view.Items = append(view.Items, MessageView{Message: m, Mine: m.Mine(s.actor.UserID)})
	}
	if conv, ok := s.conversations.Get(convID); ok {
		view.CanSend = CanSend(conv.Status)
		view.CanResolve = CanResolve(s.actor.Role, conv.Status)
		view.CanClose = CanClose(s.actor.Role, conv.Status)
		view.CanReopen = CanReopen(s.actor.Role, conv.Status)
		view.Transitions = AllowedTransitions(s.actor.Role, conv.Status)
	}
	return view
}

// LastError returns the banner text, empty when the last action
// succeeded.
func (s *Session) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// LastUsed reports the most recent user activity, for idle eviction.
func (s *Session) LastUsed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastUsed = time.Now()
	s.mu.Unlock()
}

func (s *Session) setError(err error) {
	s.mu.Lock()
	s.lastError = err.Error()
	s.mu.Unlock()
}

func (s *Session) clearError() {
	s.mu.Lock()
	s.lastError = ""
	s.mu.Unlock()
}
