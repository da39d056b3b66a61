package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SOTO729/Evaluaasiv3-sub001/internal/chat"
	"github.com/SOTO729/Evaluaasiv3-sub001/internal/middleware"
	"github.com/SOTO729/Evaluaasiv3-sub001/internal/models"
)

func session(c *gin.Context) *chat.Session {
	return sessions.Get(middleware.Token(c), middleware.Actor(c))
}

// GetConversations returns the current conversation list snapshot,
// including the unread total and the active selection.
func GetConversations(c *gin.Context) {
	c.JSON(http.StatusOK, session(c).Conversations())
}

// RefreshChat forces an immediate keep-selection sync ahead of the next
// poll tick.
func RefreshChat(c *gin.Context) {
	s := session(c)
	if err := s.Refresh(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.Conversations())
}

// SetFilter swaps the list query and reloads. Selection is not
// preserved across a filter change; the first result wins.
func SetFilter(c *gin.Context) {
	var filter models.ConversationFilter
	if err := c.ShouldBindJSON(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter"})
		return
	}

	s := session(c)
	if err := s.SetFilter(c.Request.Context(), filter); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.Conversations())
}

// SelectConversation switches the active conversation and loads its
// messages. Responds with the effective selection, which may differ from
// the requested id.
func SelectConversation(c *gin.Context) {
	var req struct {
		ConversationID int64 `json:"conversation_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	s := session(c)
	effective, err := s.Select(c.Request.Context(), req.ConversationID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"selected_id": effective, "messages": s.Messages()})
}

// GetMessages returns the selected conversation's thread snapshot with
// the permission flags for the viewer's role.
func GetMessages(c *gin.Context) {
	c.JSON(http.StatusOK, session(c).Messages())
}

// SendMessage posts a message to the selected conversation and syncs.
func SendMessage(c *gin.Context) {
	var out models.OutgoingMessage
	if err := c.ShouldBindJSON(&out); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	s := session(c)
	msg, err := s.Send(c.Request.Context(), out)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": msg, "messages": s.Messages()})
}

// CreateConversation runs the composer workflow; the new conversation
// becomes the selection.
func CreateConversation(c *gin.Context) {
	var input models.NewConversationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	s := session(c)
	conv, err := s.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"conversation": conv, "conversations": s.Conversations()})
}

// ChangeStatus applies a role-gated transition and refreshes the list.
func ChangeStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid conversation id"})
		return
	}

	var req struct {
		Status models.ConversationStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	s := session(c)
	if err := s.ChangeStatus(c.Request.Context(), id, req.Status); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.Conversations())
}

// SearchCandidates proxies the support-only candidate directory lookup.
func SearchCandidates(c *gin.Context) {
	s := session(c)
	hits, err := s.SearchCandidates(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"candidates": hits})
}
