package chat

import (
	"context"
	"sort"
	"sync"

	"github.com/SOTO729/Evaluaasiv3-sub001/internal/models"
)

// MessageStore holds the message list for the currently selected
// conversation. Loads are fenced: a fetch started for conversation A is
// discarded when the selection moved to B before the response arrived,
// no matter which response lands first.
type MessageStore struct {
	mu sync.RWMutex

	backend Backend
	token   string
	perPage int

	// selection reports the session's current selection at commit time.
	selection func() int64
	tracker   *ReadTracker

	conversationID int64
	items          []models.Message
	total          int
}

func NewMessageStore(backend Backend, token string, perPage int, selection func() int64, tracker *ReadTracker) *MessageStore {
	if perPage <= 0 {
		perPage = 50
	}
	return &MessageStore{
		backend:   backend,
		token:     token,
		perPage:   perPage,
		selection: selection,
		tracker:   tracker,
	}
}

// Load fetches one page of messages for conversationID and commits it if
// the conversation is still the selected one when the response arrives.
// Discarded (stale) results are not an error. On a non-empty commit the
// read watermark advances to the newest message.
func (s *MessageStore) Load(ctx context.Context, conversationID int64, page int) error {
	if conversationID == NoSelection {
		s.Clear()
		return nil
	}
	if page <= 0 {
		page = 1
	}

	// The target id is captured here; completion order proves nothing.
	msgs, err := s.backend.ListMessages(ctx, s.token, conversationID, page, s.perPage)
	if err != nil {
		return err
	}

	if s.selection() != conversationID {
		return nil // stale fetch, selection moved on
	}

	s.commit(conversationID, msgs)

	if n := len(msgs.Items); n > 0 {
		s.tracker.MarkRead(ctx, conversationID, msgs.Items[n-1].ID)
	}
	return nil
}

// commit replaces state with the fetched page, normalized to ascending
// id order with duplicates dropped. Overlapping loads of the same page
// therefore converge to the same list.
func (s *MessageStore) commit(conversationID int64, page *models.MessagePage) {
	items := make([]models.Message, 0, len(page.Items))
	seen := make(map[int64]struct{}, len(page.Items))
	for _, m := range page.Items {
		if _, dup := seen[m.ID]; dup {
			continue
		}
		seen[m.ID] = struct{}{}
		items = append(items, m)
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	s.mu.Lock()
	s.conversationID = conversationID
	s.items = items
	s.total = page.Total
	s.mu.Unlock()
}

// Clear empties the store, e.g. when the selection is cleared.
func (s *MessageStore) Clear() {
	s.mu.Lock()
	s.conversationID = NoSelection
	s.items = nil
	s.total = 0
	s.mu.Unlock()
}

// Snapshot returns the conversation the messages belong to and a copy of
// the list in ascending order.
func (s *MessageStore) Snapshot() (int64, []models.Message, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]models.Message, len(s.items))
	copy(items, s.items)
	return s.conversationID, items, s.total
}
