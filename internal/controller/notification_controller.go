package controller

import (
	"atomic_sensei_backend/internal/service"
	"atomic_sensei_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	NotificationService *service.NotificationService
}

func NewNotificationController(notificationService *service.NotificationService) *NotificationController {
	return &NotificationController{NotificationService: notificationService}
}

// ListNotifications godoc
// @Summary Inbox
// @Description Newest first
// @Tags Notifications
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Notification} "Success"
// @Router /api/notifications [get]
func (c *NotificationController) ListNotifications(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	notifications, err := c.NotificationService.List(ctx.Request.Context(), userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, notifications)
}

// UnreadCount godoc
// @Summary Number of unread notifications
// @Tags Notifications
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=object} "Success"
// @Router /api/notifications/unread-count [get]
func (c *NotificationController) UnreadCount(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	count, err := c.NotificationService.UnreadCount(ctx.Request.Context(), userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"count": count})
}

// MarkRead godoc
// @Summary Mark a notification as read
// @Tags Notifications
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Notification ID"
// @Success 200 {object} util.Response "Notification marked as read"
// @Failure 404 {object} util.Response "Notification not found"
// @Router /api/notifications/{id}/read [put]
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "Invalid id")
		return
	}

	found, err := c.NotificationService.MarkRead(ctx.Request.Context(), userID, id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if !found {
		util.NotFound(ctx, "Notification not found")
		return
	}
	util.SuccessWithMessage(ctx, "Notification marked as read", nil)
}

// ClearNotifications godoc
// @Summary Empty the inbox
// @Tags Notifications
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response "Notifications cleared"
// @Router /api/notifications [delete]
func (c *NotificationController) ClearNotifications(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	if err := c.NotificationService.Clear(ctx.Request.Context(), userID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, "Notifications cleared", nil)
}
