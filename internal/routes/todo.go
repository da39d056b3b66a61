package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/SOTO729/Evaluaasiv3-sub001/internal/handlers"
	"github.com/SOTO729/Evaluaasiv3-sub001/internal/middleware"
)

func RegisterTodoRoutes(r gin.IRouter) {
	todos := r.Group("/todos")
	todos.Use(middleware.AuthMiddleware())
	{
		todos.GET("", handlers.GetTodos)
		todos.PUT("", handlers.PutTodo)
		todos.DELETE("/:key", handlers.DeleteTodo)
	}
}
