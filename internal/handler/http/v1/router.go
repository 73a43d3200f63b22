package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Маршруты сессии осмотра: каталог, режимы, видимость и мутации
	sessions := api.Group("/sessions")
	{
		sessions.POST("", h.openSession)
		sessions.DELETE("/:id", h.closeSession)
		sessions.GET("/:id/assets", h.sessionAssets)
		sessions.PUT("/:id/mode", h.setMode)
		sessions.PUT("/:id/viewport", h.updateViewport)
		sessions.GET("/:id/visible", h.visibleAssets)
		sessions.POST("/:id/events", h.handleMapEvent)
		sessions.POST("/:id/mutations/:mutationId/confirm", h.confirmMutation)
		sessions.POST("/:id/mutations/:mutationId/cancel", h.cancelMutation)
		sessions.GET("/:id/checklist", h.checklist)
		sessions.POST("/:id/checklist/reset", h.resetChecklist)
	}

	// Маршруты отчётов по командам
	teams := api.Group("/teams")
	{
		teams.GET("/:division/:section/stats", h.teamStats)
		teams.GET("/:division/:section/checklist.csv", h.exportChecklist)
	}

	// Маршруты учётных записей дружины (CRUD)
	users := api.Group("/users")
	{
		users.POST("", h.createUser)
		users.GET("/:id", h.getUser)
		users.PUT("/:id", h.updateUser)
		users.DELETE("/:id", h.deleteUser)
	}

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
