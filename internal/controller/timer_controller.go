package controller

import (
	"atomic_sensei_backend/internal/service"
	"atomic_sensei_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TimerController struct {
	TimerService *service.TimerService
}

func NewTimerController(timerService *service.TimerService) *TimerController {
	return &TimerController{TimerService: timerService}
}

// SnoozeRequest
// swagger:model SnoozeRequest
type SnoozeRequest struct {
	SnoozeMinutes int `json:"snoozeMinutes"`
}

// CreateTimer godoc
// @Summary Schedule the next lesson
// @Description Replaces any pending timer of the roadmap
// @Tags Timers
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.CreateTimerInput true "Timer"
// @Success 201 {object} util.Response{data=model.Timer} "Created"
// @Failure 400 {object} util.Response "Invalid request"
// @Failure 404 {object} util.Response "Roadmap not found"
// @Router /api/timers [post]
func (c *TimerController) CreateTimer(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req service.CreateTimerInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	timer, err := c.TimerService.Create(userID, req)
	if err != nil {
		respondError(ctx, err, "")
		return
	}
	util.Created(ctx, timer)
}

// SuggestTimer godoc
// @Summary Suggest a delay
// @Description Uses the latest quiz attempt for the unit; falls back to the default interval
// @Tags Timers
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.SuggestTimerInput true "Roadmap unit"
// @Success 200 {object} util.Response{data=service.TimerSuggestion} "Success"
// @Failure 404 {object} util.Response "Roadmap not found"
// @Router /api/timers/suggest [post]
func (c *TimerController) SuggestTimer(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req service.SuggestTimerInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	suggestion, err := c.TimerService.Suggest(ctx.Request.Context(), userID, req)
	if err != nil {
		respondError(ctx, err, "")
		return
	}
	util.Success(ctx, suggestion)
}

// GetActiveTimers godoc
// @Summary Pending timers
// @Tags Timers
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Timer} "Success"
// @Router /api/timers/active [get]
func (c *TimerController) GetActiveTimers(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	timers, err := c.TimerService.Active(userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, timers)
}

// GetCurrentTimer godoc
// @Summary Soonest pending timer with countdown
// @Tags Timers
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.CurrentTimer} "Success"
// @Failure 404 {object} util.Response "No active timer"
// @Router /api/timers/current [get]
func (c *TimerController) GetCurrentTimer(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	current, err := c.TimerService.Current(userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if current == nil {
		util.NotFound(ctx, "No active timer")
		return
	}
	util.Success(ctx, current)
}

// GetTimerHistory godoc
// @Summary Delivered timers
// @Tags Timers
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Timer} "Success"
// @Router /api/timers/history [get]
func (c *TimerController) GetTimerHistory(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	timers, err := c.TimerService.History(userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, timers)
}

// GetNextContent godoc
// @Summary Lesson that is due now
// @Tags Timers
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.NextDelivery} "Success"
// @Router /api/timers/next [get]
func (c *TimerController) GetNextContent(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	next, err := c.TimerService.Next(userID)
	if err != nil {
		respondError(ctx, err, "")
		return
	}
	if next.Message != "" {
		util.SuccessWithMessage(ctx, next.Message, next)
		return
	}
	util.Success(ctx, next)
}

// MarkDelivered godoc
// @Summary Mark a timer's lesson as delivered
// @Tags Timers
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Timer ID"
// @Success 200 {object} util.Response{data=model.Timer} "Success"
// @Failure 404 {object} util.Response "Timer not found"
// @Router /api/timers/{id}/delivered [put]
func (c *TimerController) MarkDelivered(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	timer, err := c.TimerService.MarkDelivered(userID, id)
	if err != nil {
		respondError(ctx, err, "")
		return
	}
	util.SuccessWithMessage(ctx, "Content marked as delivered", timer)
}

// SnoozeTimer godoc
// @Summary Postpone a timer
// @Tags Timers
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Timer ID"
// @Param   body body SnoozeRequest true "Minutes to add"
// @Success 200 {object} util.Response{data=model.Timer} "Success"
// @Failure 400 {object} util.Response "Invalid snooze time"
// @Failure 404 {object} util.Response "Timer not found"
// @Router /api/timers/{id}/snooze [put]
func (c *TimerController) SnoozeTimer(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	var req SnoozeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, util.ErrInvalidSnooze.Error())
		return
	}

	timer, err := c.TimerService.Snooze(userID, id, req.SnoozeMinutes)
	if err != nil {
		respondError(ctx, err, "")
		return
	}
	util.SuccessWithMessage(ctx, "Timer snoozed", timer)
}

// DeleteTimer godoc
// @Summary Delete a timer
// @Tags Timers
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Timer ID"
// @Success 200 {object} util.Response "Timer deleted"
// @Failure 404 {object} util.Response "Timer not found"
// @Router /api/timers/{id} [delete]
func (c *TimerController) DeleteTimer(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	if err := c.TimerService.Delete(userID, id); err != nil {
		respondError(ctx, err, "")
		return
	}
	util.SuccessWithMessage(ctx, "Timer deleted", nil)
}
