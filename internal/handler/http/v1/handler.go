package v1

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shenikar/hydrant_inspection_system/internal/config"
	"github.com/shenikar/hydrant_inspection_system/internal/models"
	"github.com/shenikar/hydrant_inspection_system/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	inspectionService service.InspectionService
	userService       service.UserService
	reportService     service.ReportService
	logger            *logrus.Logger
	validate          *validator.Validate
	cfg               *config.Config
}

func NewHandler(
	inspectionService service.InspectionService,
	userService service.UserService,
	reportService service.ReportService,
	logger *logrus.Logger,
	cfg *config.Config,
) *Handler {
	return &Handler{
		inspectionService: inspectionService,
		userService:       userService,
		reportService:     reportService,
		logger:            logger,
		validate:          validator.New(),
		cfg:               cfg,
	}
}

// respondError переводит ошибки доменной таксономии в HTTP-статусы
func respondError(c *gin.Context, log *logrus.Entry, err error) {
	switch {
	case errors.Is(err, models.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
	case errors.Is(err, models.ErrAssetNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "asset not found"})
	case errors.Is(err, models.ErrMutationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "pending mutation not found"})
	case errors.Is(err, models.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	case errors.Is(err, models.ErrConcurrentMutationRejected):
		c.JSON(http.StatusConflict, gin.H{"error": "another mutation is already in flight"})
	case errors.Is(err, models.ErrInvalidModeOperation):
		c.JSON(http.StatusConflict, gin.H{"error": "operation not allowed in current mode"})
	case errors.Is(err, models.ErrExportForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "export is not allowed for this team"})
	case errors.Is(err, models.ErrPersistenceUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage temporarily unavailable, please retry"})
	case errors.Is(err, models.ErrMutationFailed):
		log.WithError(err).Error("Mutation failed, local state rolled back")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mutation failed, map state was rolled back"})
	default:
		log.WithError(err).Error("Unexpected service error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// @Summary Open an inspection session
// @Description Load the asset catalog merged with the team checklist and open a session. Requires API key.
// @Tags Sessions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param session body OpenSessionRequest true "Team opening the session"
// @Success 201 {object} SessionResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} map[string]string "Storage unavailable"
// @Router /sessions [post]
func (h *Handler) openSession(c *gin.Context) {
	var input OpenSessionRequest
	log := h.logger.WithField("method", "openSession")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	team := models.TeamKey{Division: input.Division, Section: input.Section}
	snapshot, err := h.inspectionService.OpenSession(c.Request.Context(), team)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, SnapshotToSessionResponse(snapshot))
}

// @Summary Close an inspection session
// @Description Close the session and release its resources. Requires API key.
// @Tags Sessions
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Session ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Session not found"
// @Router /sessions/{id} [delete]
func (h *Handler) closeSession(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "closeSession").WithField("session_id", id)

	if err := h.inspectionService.CloseSession(id); err != nil {
		respondError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Get session assets
// @Description Get the merged asset list and mode of the session. Requires API key.
// @Tags Sessions
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Session ID"
// @Success 200 {object} SessionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Session not found"
// @Router /sessions/{id}/assets [get]
func (h *Handler) sessionAssets(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "sessionAssets").WithField("session_id", id)

	snapshot, err := h.inspectionService.SessionAssets(id)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, SnapshotToSessionResponse(snapshot))
}

// @Summary Switch interaction mode
// @Description Switch the session between inspect, move and add_delete modes. Requires API key.
// @Tags Sessions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Session ID"
// @Param mode body SetModeRequest true "Target mode"
// @Success 200 "OK"
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Session not found"
// @Router /sessions/{id}/mode [put]
func (h *Handler) setMode(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "setMode").WithField("session_id", id)

	var input SetModeRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.inspectionService.SetMode(id, models.InteractionMode(input.Mode)); err != nil {
		respondError(c, log, err)
		return
	}
	c.Status(http.StatusOK)
}

// @Summary Report a viewport change
// @Description Report the current map viewport; the visible set is recomputed after a quiet period. Requires API key.
// @Tags Sessions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Session ID"
// @Param viewport body ViewportRequest true "Current viewport"
// @Success 202 "Accepted"
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Session not found"
// @Router /sessions/{id}/viewport [put]
func (h *Handler) updateViewport(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "updateViewport").WithField("session_id", id)

	var input ViewportRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	viewport := models.Viewport{
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
		Zoom:      input.Zoom,
	}
	if err := h.inspectionService.UpdateViewport(id, viewport); err != nil {
		respondError(c, log, err)
		return
	}
	c.Status(http.StatusAccepted)
}

// @Summary Get visible assets
// @Description Get the assets within the viewport-dependent radius of the map center. Requires API key.
// @Tags Sessions
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Session ID"
// @Success 200 {array} AssetResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Session not found"
// @Router /sessions/{id}/visible [get]
func (h *Handler) visibleAssets(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "visibleAssets").WithField("session_id", id)

	assets, err := h.inspectionService.VisibleAssets(id)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToAssetResponses(assets))
}

// @Summary Dispatch a map event
// @Description Interpret a map event under the active mode; returns a confirmation prompt or no action. Requires API key.
// @Tags Mutations
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Session ID"
// @Param event body MapEventRequest true "Map surface event"
// @Success 200 {object} PromptResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Session or asset not found"
// @Failure 409 {object} map[string]string "Another mutation is already in flight"
// @Router /sessions/{id}/events [post]
func (h *Handler) handleMapEvent(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "handleMapEvent").WithField("session_id", id)

	var input MapEventRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event := DTOToMapEvent(input)
	if event == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown event type %q", input.Type)})
		return
	}

	prompt, err := h.inspectionService.HandleMapEvent(id, event)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, PromptToResponse(prompt))
}

// @Summary Confirm a pending mutation
// @Description Apply the pending mutation and persist it; on storage failure the map state is rolled back. Requires API key.
// @Tags Mutations
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Session ID"
// @Param mutationId path string true "Mutation ID"
// @Param confirm body ConfirmMutationRequest true "User choice"
// @Success 200 {object} MutationResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Session or mutation not found"
// @Failure 500 {object} map[string]string "Mutation failed, state rolled back"
// @Router /sessions/{id}/mutations/{mutationId}/confirm [post]
func (h *Handler) confirmMutation(c *gin.Context) {
	id := c.Param("id")
	mutationID := c.Param("mutationId")
	log := h.logger.WithField("method", "confirmMutation").
		WithField("session_id", id).
		WithField("mutation_id", mutationID)

	var input ConfirmMutationRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.inspectionService.ConfirmMutation(c.Request.Context(), id, mutationID, service.ConfirmInput{
		Choice:  input.Choice,
		Kind:    models.AssetKind(input.Kind),
		Address: input.Address,
	})
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ResultToMutationResponse(result))
}

// @Summary Cancel a pending mutation
// @Description Discard the pending mutation; for moves the marker reverts to its original point. Requires API key.
// @Tags Mutations
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Session ID"
// @Param mutationId path string true "Mutation ID"
// @Success 200 {object} CancelResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Session or mutation not found"
// @Router /sessions/{id}/mutations/{mutationId}/cancel [post]
func (h *Handler) cancelMutation(c *gin.Context) {
	id := c.Param("id")
	mutationID := c.Param("mutationId")
	log := h.logger.WithField("method", "cancelMutation").
		WithField("session_id", id).
		WithField("mutation_id", mutationID)

	result, err := h.inspectionService.CancelMutation(id, mutationID)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ResultToCancelResponse(result))
}

// @Summary Get the team checklist panel
// @Description Get checked assets split into abnormal and normal, optionally filtered by address keyword. Requires API key.
// @Tags Checklist
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Session ID"
// @Param keyword query string false "Address substring filter"
// @Success 200 {object} ChecklistResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Session not found"
// @Router /sessions/{id}/checklist [get]
func (h *Handler) checklist(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "checklist").WithField("session_id", id)

	view, err := h.inspectionService.ChecklistView(id, c.Query("keyword"))
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ViewToChecklistResponse(view))
}

// @Summary Reset the team checklist
// @Description Reset every checked asset back to unchecked. Allowed only in inspect mode with at least one checked asset. Requires API key.
// @Tags Checklist
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Session ID"
// @Success 200 {object} ResetResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} map[string]string "Not in inspect mode or nothing to reset"
// @Failure 500 {object} map[string]string "Reset failed"
// @Router /sessions/{id}/checklist/reset [post]
func (h *Handler) resetChecklist(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "resetChecklist").WithField("session_id", id)

	count, err := h.inspectionService.ResetChecklist(c.Request.Context(), id)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ResetResponse{ResetCount: count})
}

// @Summary Get team inspection stats
// @Description Get the inspection progress summary for a team. Requires API key.
// @Tags Teams
// @Produce json
// @Security ApiKeyAuth
// @Param division path string true "Division"
// @Param section path string true "Section"
// @Success 200 {object} TeamStatsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} map[string]string "Storage unavailable"
// @Router /teams/{division}/{section}/stats [get]
func (h *Handler) teamStats(c *gin.Context) {
	team := models.TeamKey{Division: c.Param("division"), Section: c.Param("section")}
	log := h.logger.WithField("method", "teamStats").WithField("team", team.String())

	stats, err := h.reportService.TeamStats(c.Request.Context(), team)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, StatsToResponse(stats))
}

// @Summary Export the team checklist as CSV
// @Description Export the checked assets of a team as CSV. The requesting user's role defines which teams are allowed. Requires API key.
// @Tags Teams
// @Produce text/csv
// @Security ApiKeyAuth
// @Param division path string true "Division"
// @Param section path string true "Section"
// @Param user_id query string true "Requesting user ID"
// @Success 200 {string} string "CSV payload"
// @Failure 400 {object} map[string]string "Missing user_id"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Role does not allow exporting this team"
// @Failure 404 {object} map[string]string "User not found"
// @Router /teams/{division}/{section}/checklist.csv [get]
func (h *Handler) exportChecklist(c *gin.Context) {
	team := models.TeamKey{Division: c.Param("division"), Section: c.Param("section")}
	userID := c.Query("user_id")
	log := h.logger.WithField("method", "exportChecklist").
		WithField("team", team.String()).
		WithField("user_id", userID)

	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id query parameter is required"})
		return
	}

	// Сначала собираем CSV в буфер: при ошибке авторизации или выгрузки
	// клиент получает JSON-ошибку, а не csv-заголовки
	var buf bytes.Buffer
	if err := h.reportService.ExportChecklistCSV(c.Request.Context(), userID, team, &buf); err != nil {
		respondError(c, log, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s-checklist.csv", team.String()))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// @Summary Create a user
// @Description Create a brigade member account. Requires API key.
// @Tags Users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param user body CreateUserRequest true "User creation request"
// @Success 201 {object} UserResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /users [post]
func (h *Handler) createUser(c *gin.Context) {
	var input CreateUserRequest
	log := h.logger.WithField("method", "createUser")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	model := DTOToUserModel(input)
	if err := h.userService.CreateUser(c.Request.Context(), model); err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToUserResponse(model))
}

// @Summary Get user by ID
// @Description Get a single brigade member account by its ID. Requires API key.
// @Tags Users
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "User ID"
// @Success 200 {object} UserResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "User not found"
// @Router /users/{id} [get]
func (h *Handler) getUser(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "getUser").WithField("user_id", id)

	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToUserResponse(user))
}

// @Summary Update a user
// @Description Update a brigade member account by ID. Requires API key.
// @Tags Users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "User ID"
// @Param user body UpdateUserRequest true "User update request"
// @Success 200 "OK"
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "User not found"
// @Router /users/{id} [put]
func (h *Handler) updateUser(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "updateUser").WithField("user_id", id)

	var input UpdateUserRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	model := DTOToUserModel(input)
	model.ID = id
	if err := h.userService.UpdateUser(c.Request.Context(), model); err != nil {
		respondError(c, log, err)
		return
	}
	c.Status(http.StatusOK)
}

// @Summary Delete a user
// @Description Delete a brigade member account by its ID. Requires API key.
// @Tags Users
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "User ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "User not found"
// @Router /users/{id} [delete]
func (h *Handler) deleteUser(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "deleteUser").WithField("user_id", id)

	if err := h.userService.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
