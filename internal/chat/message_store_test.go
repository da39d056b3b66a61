package chat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SOTO729/Evaluaasiv3-sub001/internal/models"
)

func TestLoadCommitsAscendingOrder(t *testing.T) {
	f := newFakeBackend()
	f.addConversation(models.Conversation{ID: 1, Status: models.StatusOpen})
	f.addMessage(1, 10, "uno")
	f.addMessage(1, 20, "dos")
	f.addMessage(1, 10, "tres")

	selected := int64(1)
	ms := NewMessageStore(f, "tok", 50, func() int64 { return selected }, NewReadTracker(f, "tok"))

	require.NoError(t, ms.Load(context.Background(), 1, 1))

	convID, items, total := ms.Snapshot()
	assert.Equal(t, int64(1), convID)
	assert.Equal(t, 3, total)
	require.Len(t, items, 3)
	for i := 1; i < len(items); i++ {
		assert.Less(t, items[i-1].ID, items[i].ID)
	}
}

func TestLoadTwiceIsIdempotent(t *testing.T) {
	f := newFakeBackend()
	f.addConversation(models.Conversation{ID: 1, Status: models.StatusOpen})
	f.addMessage(1, 10, "uno")
	f.addMessage(1, 20, "dos")

	selected := int64(1)
	ms := NewMessageStore(f, "tok", 50, func() int64 { return selected }, NewReadTracker(f, "tok"))

	require.NoError(t, ms.Load(context.Background(), 1, 1))
	_, first, _ := ms.Snapshot()
	require.NoError(t, ms.Load(context.Background(), 1, 1))
	_, second, _ := ms.Snapshot()

	assert.Equal(t, first, second)
}

func TestStaleLoadIsDiscarded(t *testing.T) {
	f := newFakeBackend()
	f.addConversation(models.Conversation{ID: 1, Status: models.StatusOpen})
	f.addConversation(models.Conversation{ID: 2, Status: models.StatusOpen})
	f.addMessage(1, 10, "from A")
	f.addMessage(2, 10, "from B")

	selected := int64(1)
	ms := NewMessageStore(f, "tok", 50, func() int64 { return selected }, NewReadTracker(f, "tok"))

	// While conversation 1's fetch is in flight, the user selects
	// conversation 2.
	f.beforeListMessages = func(conversationID int64) {
		if conversationID == 1 {
			selected = 2
		}
	}

	require.NoError(t, ms.Load(context.Background(), 1, 1))

	// nothing committed for conversation 1
	convID, items, _ := ms.Snapshot()
	assert.Equal(t, NoSelection, convID)
	assert.Empty(t, items)

	f.beforeListMessages = nil
	require.NoError(t, ms.Load(context.Background(), 2, 1))
	convID, items, _ = ms.Snapshot()
	assert.Equal(t, int64(2), convID)
	require.Len(t, items, 1)
	assert.Equal(t, "from B", items[0].Content)
}

func TestLoadAdvancesWatermark(t *testing.T) {
	f := newFakeBackend()
	f.addConversation(models.Conversation{ID: 1, Status: models.StatusOpen, UnreadCount: 2})
	f.addMessage(1, 10, "uno")
	last := f.addMessage(1, 10, "dos")

	tracker := NewReadTracker(f, "tok")
	selected := int64(1)
	ms := NewMessageStore(f, "tok", 50, func() int64 { return selected }, tracker)

	require.NoError(t, ms.Load(context.Background(), 1, 1))
	assert.Equal(t, last.ID, tracker.Watermark(1))

	// repeating the load does not re-send the receipt
	require.NoError(t, ms.Load(context.Background(), 1, 1))
	reads := 0
	for _, call := range f.callLog() {
		if call == "MarkRead" {
			reads++
		}
	}
	assert.Equal(t, 1, reads)
}

func TestEmptyPageSkipsWatermark(t *testing.T) {
	f := newFakeBackend()
	f.addConversation(models.Conversation{ID: 1, Status: models.StatusOpen})

	tracker := NewReadTracker(f, "tok")
	selected := int64(1)
	ms := NewMessageStore(f, "tok", 50, func() int64 { return selected }, tracker)

	require.NoError(t, ms.Load(context.Background(), 1, 1))
	assert.NotContains(t, f.callLog(), "MarkRead")
}

func TestMarkReadFailureIsSwallowed(t *testing.T) {
	f := newFakeBackend()
	f.addConversation(models.Conversation{ID: 1, Status: models.StatusOpen})
	f.addMessage(1, 10, "uno")
	f.markReadErr = assert.AnError

	tracker := NewReadTracker(f, "tok")
	selected := int64(1)
	ms := NewMessageStore(f, "tok", 50, func() int64 { return selected }, tracker)

	// the load itself succeeds; the receipt failure stays invisible
	require.NoError(t, ms.Load(context.Background(), 1, 1))
	assert.Equal(t, int64(0), tracker.Watermark(1))

	// next load retries the receipt because nothing was acknowledged
	f.markReadErr = nil
	require.NoError(t, ms.Load(context.Background(), 1, 1))
	assert.Equal(t, int64(1), tracker.Watermark(1))
}
