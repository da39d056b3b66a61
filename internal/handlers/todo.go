package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SOTO729/Evaluaasiv3-sub001/internal/middleware"
	"github.com/SOTO729/Evaluaasiv3-sub001/internal/todo"
)

func todoDay(c *gin.Context) string {
	if day := c.Query("day"); day != "" {
		return day
	}
	return todo.Day(time.Now())
}

// GetTodos lists the viewer's to-do items for a day (default today).
func GetTodos(c *gin.Context) {
	actor := middleware.Actor(c)

	items, err := todos.ListDay(actor.UserID, todoDay(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load todos"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// PutTodo writes one slot; last write wins per (user, day, key).
func PutTodo(c *gin.Context) {
	actor := middleware.Actor(c)

	var req struct {
		Day  string `json:"day"`
		Key  string `json:"key" binding:"required"`
		Text string `json:"text"`
		Done bool   `json:"done"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if req.Day == "" {
		req.Day = todo.Day(time.Now())
	}

	item, err := todos.Upsert(actor.UserID, req.Day, req.Key, req.Text, req.Done)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save todo"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// DeleteTodo clears one slot.
func DeleteTodo(c *gin.Context) {
	actor := middleware.Actor(c)

	key := c.Param("key")
	if err := todos.Delete(actor.UserID, todoDay(c), key); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete todo"})
		return
	}
	c.Status(http.StatusNoContent)
}
