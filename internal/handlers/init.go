package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SOTO729/Evaluaasiv3-sub001/internal/chat"
	"github.com/SOTO729/Evaluaasiv3-sub001/internal/todo"
	apperrors "github.com/SOTO729/Evaluaasiv3-sub001/pkg/errors"
)

var (
	sessions *chat.Registry
	todos    *todo.Store
)

// Init wires the shared dependencies. Called once from main before the
// router starts serving.
func Init(registry *chat.Registry, todoStore *todo.Store) {
	sessions = registry
	todos = todoStore
}

// respondError maps the engine's error taxonomy onto gateway responses.
// Network failures to the upstream backend surface as 502 so the UI can
// tell "backend down" apart from its own bad request.
func respondError(c *gin.Context, err error) {
	if ae, ok := err.(*apperrors.AppError); ok {
		status := ae.Code
		if ae.Kind == apperrors.KindNetwork || status == 0 {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": ae.Message, "kind": ae.Kind})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
