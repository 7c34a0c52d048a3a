package controller

import (
	"atomic_sensei_backend/internal/model"
	"atomic_sensei_backend/internal/service"
	"atomic_sensei_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ContentController struct {
	ContentService *service.ContentService
}

func NewContentController(contentService *service.ContentService) *ContentController {
	return &ContentController{ContentService: contentService}
}

// GenerateContentRequest addresses the unit a lesson is written for.
// swagger:model GenerateContentRequest
type GenerateContentRequest struct {
	RoadmapID     uint `json:"roadmapId" binding:"required"`
	ModuleIndex   int  `json:"moduleIndex" binding:"min=0"`
	TopicIndex    int  `json:"topicIndex" binding:"min=0"`
	SubtopicIndex *int `json:"subtopicIndex" binding:"omitempty,min=0"`
}

// GenerateContent godoc
// @Summary Generate a lesson
// @Description Returns the existing lesson for the unit or writes a new one with the model
// @Tags Content
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body GenerateContentRequest true "Roadmap unit"
// @Success 200 {object} util.Response{data=model.Content} "Existing lesson"
// @Success 201 {object} util.Response{data=model.Content} "Created"
// @Failure 404 {object} util.Response "Roadmap, module, topic or subtopic not found"
// @Failure 502 {object} util.Response "Error generating content with AI"
// @Router /api/content/generate [post]
func (c *ContentController) GenerateContent(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req GenerateContentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	ref := model.UnitRef{ModuleIndex: req.ModuleIndex, TopicIndex: req.TopicIndex, SubtopicIndex: req.SubtopicIndex}
	content, created, err := c.ContentService.Generate(ctx.Request.Context(), userID, req.RoadmapID, ref)
	if err != nil {
		respondError(ctx, err, "Error generating content with AI")
		return
	}
	if created {
		util.Created(ctx, content)
		return
	}
	util.Success(ctx, content)
}

// GetContentByUnit godoc
// @Summary Lesson for a roadmap unit
// @Tags Content
// @Produce  json
// @Security BearerAuth
// @Param   roadmapId path int true "Roadmap ID"
// @Param   m path int true "Module index"
// @Param   t path int true "Topic index"
// @Param   s path int false "Subtopic index"
// @Success 200 {object} util.Response{data=model.Content} "Success"
// @Failure 404 {object} util.Response "Content not found"
// @Router /api/content/roadmap/{roadmapId}/module/{m}/topic/{t} [get]
// @Router /api/content/roadmap/{roadmapId}/module/{m}/topic/{t}/subtopic/{s} [get]
func (c *ContentController) GetContentByUnit(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	roadmapID, ok := paramID(ctx, "roadmapId")
	if !ok {
		return
	}
	ref, ok := unitFromPath(ctx)
	if !ok {
		return
	}

	content, err := c.ContentService.GetByUnit(ctx.Request.Context(), userID, roadmapID, ref)
	if err != nil {
		respondError(ctx, err, "")
		return
	}
	util.Success(ctx, content)
}

// GetContent godoc
// @Summary Get a lesson
// @Description Counts the view
// @Tags Content
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Content ID"
// @Success 200 {object} util.Response{data=model.Content} "Success"
// @Failure 404 {object} util.Response "Content not found"
// @Router /api/content/{id} [get]
func (c *ContentController) GetContent(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	content, err := c.ContentService.Get(userID, id)
	if err != nil {
		respondError(ctx, err, "")
		return
	}
	util.Success(ctx, content)
}

// UpdateContent godoc
// @Summary Edit a lesson
// @Tags Content
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Content ID"
// @Param   body body service.UpdateContentInput true "Fields to change"
// @Success 200 {object} util.Response{data=model.Content} "Content updated"
// @Failure 400 {object} util.Response "Invalid request"
// @Failure 404 {object} util.Response "Content not found"
// @Router /api/content/{id} [put]
func (c *ContentController) UpdateContent(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	var req service.UpdateContentInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	content, err := c.ContentService.Update(ctx.Request.Context(), userID, id, req)
	if err != nil {
		respondError(ctx, err, "")
		return
	}
	util.SuccessWithMessage(ctx, "Content updated", content)
}

// DeleteContent godoc
// @Summary Delete a lesson
// @Tags Content
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Content ID"
// @Success 200 {object} util.Response "Content deleted"
// @Failure 404 {object} util.Response "Content not found"
// @Router /api/content/{id} [delete]
func (c *ContentController) DeleteContent(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	if err := c.ContentService.Delete(ctx.Request.Context(), userID, id); err != nil {
		respondError(ctx, err, "")
		return
	}
	util.SuccessWithMessage(ctx, "Content deleted", nil)
}
