package chat

import (
	"context"
	"sync"

	"github.com/SOTO729/Evaluaasiv3-sub001/pkg/logger"
)

// ReadTracker advances the viewer's read watermark after successful
// message loads. Strictly best-effort: failures are swallowed and the
// unread counters simply stay stale until the next successful call.
type ReadTracker struct {
	backend Backend
	token   string

	mu         sync.Mutex
	watermarks map[int64]int64
}

func NewReadTracker(backend Backend, token string) *ReadTracker {
	return &ReadTracker{
		backend:    backend,
		token:      token,
		watermarks: make(map[int64]int64),
	}
}

// MarkRead tells the backend everything up to lastMessageID has been
// seen. Calls with the same or an older id than the last acknowledged
// one are skipped; the backend treats them as no-ops anyway.
func (t *ReadTracker) MarkRead(ctx context.Context, conversationID, lastMessageID int64) {
	t.mu.Lock()
	if lastMessageID <= t.watermarks[conversationID] {
		t.mu.Unlock()
		return
	}
	t.mu.Unlock()

	if err := t.backend.MarkRead(ctx, t.token, conversationID, lastMessageID); err != nil {
		logger.Debug().
			Err(err).
			Int64("conversation_id", conversationID).
			Int64("last_message_id", lastMessageID).
			Msg("markRead failed, unread count stays stale until next poll")
		return
	}

	t.mu.Lock()
	if lastMessageID > t.watermarks[conversationID] {
		t.watermarks[conversationID] = lastMessageID
	}
	t.mu.Unlock()
}

// Watermark returns the last acknowledged message id for a conversation,
// 0 when nothing was acknowledged yet.
func (t *ReadTracker) Watermark(conversationID int64) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.watermarks[conversationID]
}
