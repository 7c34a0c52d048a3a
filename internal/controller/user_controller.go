package controller

import (
	"atomic_sensei_backend/internal/service"
	"atomic_sensei_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// UserController serves the signed in user's own profile.
type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{
		UserService: userService,
	}
}

// GetProfile godoc
// @Summary Get profile
// @Tags Users
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.User} "Success"
// @Failure 401 {object} util.Response "Unauthorized"
// @Failure 404 {object} util.Response "User not found"
// @Router /api/users/profile [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	user, err := c.UserService.GetProfile(userID)
	if err != nil {
		respondError(ctx, err, "")
		return
	}
	util.Success(ctx, user)
}

// UpdateProfile godoc
// @Summary Update profile
// @Description Only the fields present in the body are changed
// @Tags Users
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.UpdateProfileInput true "Profile fields"
// @Success 200 {object} util.Response{data=model.User} "Success"
// @Failure 400 {object} util.Response "Invalid request"
// @Failure 401 {object} util.Response "Unauthorized"
// @Router /api/users/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req service.UpdateProfileInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.UpdateProfile(userID, req)
	if err != nil {
		respondError(ctx, err, "")
		return
	}
	util.SuccessWithMessage(ctx, "Profile updated", user)
}

// ChangePassword godoc
// @Summary Change password
// @Tags Users
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.ChangePasswordInput true "Current and new password"
// @Success 200 {object} util.Response "Password updated"
// @Failure 400 {object} util.Response "Invalid request"
// @Failure 401 {object} util.Response "Current password is incorrect"
// @Router /api/users/password [put]
func (c *UserController) ChangePassword(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req service.ChangePasswordInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.UserService.ChangePassword(userID, req); err != nil {
		respondError(ctx, err, "")
		return
	}
	util.SuccessWithMessage(ctx, "Password updated", nil)
}
