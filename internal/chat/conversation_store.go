package chat

import (
	"context"
	"sync"

	"github.com/SOTO729/Evaluaasiv3-sub001/internal/models"
)

// NoSelection marks "no conversation selected".
const NoSelection int64 = 0

// ConversationStore holds the conversation list for one chat session and
// which conversation is selected. State is replaced wholesale on every
// successful refresh; the store never mutates individual records
// locally (status, unread counts and last-message snapshots only change
// through re-fetching).
type ConversationStore struct {
	mu sync.RWMutex

	backend Backend
	token   string

	items       []models.Conversation
	total       int
	unreadTotal int
	filter      models.ConversationFilter
	selectedID  int64
}

func NewConversationStore(backend Backend, token string, filter models.ConversationFilter) *ConversationStore {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Status == "" {
		filter.Status = models.StatusFilterAll
	}
	return &ConversationStore{
		backend: backend,
		token:   token,
		filter:  filter,
	}
}

// Refresh fetches the list for the current filter and replaces local
// state. With keepSelection the previous selection survives if the new
// page still contains it, falling back to the first item; without it the
// first item is always selected (fresh filter change).
func (s *ConversationStore) Refresh(ctx context.Context, keepSelection bool) error {
	s.mu.RLock()
	filter := s.filter
	s.mu.RUnlock()

	page, err := s.backend.ListConversations(ctx, s.token, filter)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = page.Items
	s.total = page.Total
	s.unreadTotal = 0
	for _, c := range page.Items {
		s.unreadTotal += c.UnreadCount
	}

	previous := s.selectedID
	if keepSelection && s.containsLocked(previous) {
		return nil
	}
	s.selectFirstLocked()
	return nil
}

// SetFilter swaps the list query. The caller is expected to follow with
// a non-keep-selection Refresh.
func (s *ConversationStore) SetFilter(filter models.ConversationFilter) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Status == "" {
		filter.Status = models.StatusFilterAll
	}
	if filter.PerPage <= 0 {
		s.mu.RLock()
		filter.PerPage = s.filter.PerPage
		s.mu.RUnlock()
	}
	s.mu.Lock()
	s.filter = filter
	s.mu.Unlock()
}

// Select sets the active conversation. Ids absent from the current list
// (filtered out, deleted remotely) fall back to the first item, or to no
// selection when the list is empty. NoSelection clears explicitly.
// Returns the effective selection.
func (s *ConversationStore) Select(id int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == NoSelection {
		s.selectedID = NoSelection
		return NoSelection
	}
	if s.containsLocked(id) {
		s.selectedID = id
		return id
	}
	s.selectFirstLocked()
	return s.selectedID
}

// ForceSelect records a selection without requiring list membership.
// Used right after creating a conversation, before the next list refresh
// has a chance to include it.
func (s *ConversationStore) ForceSelect(id int64) {
	s.mu.Lock()
	s.selectedID = id
	s.mu.Unlock()
}

// SelectedID returns the current selection, NoSelection when none.
func (s *ConversationStore) SelectedID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedID
}

// Selected returns the selected conversation record, if present in the
// current list.
func (s *ConversationStore) Selected() (models.Conversation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getLocked(s.selectedID)
}

// Get looks a conversation up by id in the current list.
func (s *ConversationStore) Get(id int64) (models.Conversation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getLocked(id)
}

// UnreadTotal is the sum of unread counts across the current page.
func (s *ConversationStore) UnreadTotal() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unreadTotal
}

// Filter returns the active list query.
func (s *ConversationStore) Filter() models.ConversationFilter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// Snapshot returns a copy of the current list plus totals for rendering.
func (s *ConversationStore) Snapshot() ([]models.Conversation, int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]models.Conversation, len(s.items))
	copy(items, s.items)
	return items, s.total, s.unreadTotal
}

func (s *ConversationStore) containsLocked(id int64) bool {
	_, ok := s.getLocked(id)
	return ok
}

func (s *ConversationStore) getLocked(id int64) (models.Conversation, bool) {
	if id == NoSelection {
		return models.Conversation{}, false
	}
	for _, c := range s.items {
		if c.ID == id {
			return c, true
		}
	}
	return models.Conversation{}, false
}

func (s *ConversationStore) selectFirstLocked() {
	if len(s.items) > 0 {
		s.selectedID = s.items[0].ID
	} else {
		s.selectedID = NoSelection
	}
}
