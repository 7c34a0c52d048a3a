package controller

import (
	"atomic_sensei_backend/internal/model"
	"atomic_sensei_backend/internal/util"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

var notFoundErrors = []error{
	util.ErrUserNotFound,
	util.ErrRoadmapNotFound,
	util.ErrModuleNotFound,
	util.ErrTopicNotFound,
	util.ErrSubtopicNotFound,
	util.ErrContentNotFound,
	util.ErrQuizNotFound,
	util.ErrTimerNotFound,
}

var badRequestErrors = []error{
	util.ErrGoalRequired,
	util.ErrInvalidSnooze,
	util.ErrUnsupportedFormat,
	model.ErrInvalidIndex,
	model.ErrInvalidSubtopicIndex,
}

// respondError maps domain errors onto status codes. aiMessage is used for
// failed model calls.
func respondError(ctx *gin.Context, err error, aiMessage string) {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			util.NotFound(ctx, target.Error())
			return
		}
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			util.BadRequest(ctx, target.Error())
			return
		}
	}

	switch {
	case errors.Is(err, util.ErrInvalidCredentials), errors.Is(err, util.ErrWrongPassword):
		util.Error(ctx, http.StatusUnauthorized, err.Error())
	case errors.Is(err, util.ErrEmailRegistered):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrAIGeneration):
		ctx.JSON(http.StatusBadGateway, util.Response{
			Code:    http.StatusBadGateway,
			Message: aiMessage,
			Data:    gin.H{"details": "The AI service may be unavailable or rate limited. Please try again later."},
		})
	default:
		util.LogInternalError(ctx, err)
	}
}

// currentUserID reads the authenticated user set by AuthMiddleware.
func currentUserID(ctx *gin.Context) (uint, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return 0, false
	}
	return claims.UserID, true
}

func paramID(ctx *gin.Context, name string) (uint, bool) {
	id := util.MustParseUint(ctx.Param(name))
	if id == 0 {
		util.BadRequest(ctx, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// unitFromPath reads /module/:m/topic/:t[/subtopic/:s].
func unitFromPath(ctx *gin.Context) (model.UnitRef, bool) {
	m, okM := util.ParseIndex(ctx.Param("m"))
	t, okT := util.ParseIndex(ctx.Param("t"))
	if !okM || !okT {
		util.BadRequest(ctx, "Invalid module or topic index")
		return model.UnitRef{}, false
	}
	ref := model.UnitRef{ModuleIndex: m, TopicIndex: t}
	if raw := ctx.Param("s"); raw != "" {
		s, ok := util.ParseIndex(raw)
		if !ok {
			util.BadRequest(ctx, "Invalid subtopic index")
			return model.UnitRef{}, false
		}
		ref.SubtopicIndex = model.IntPtr(s)
	}
	return ref, true
}
