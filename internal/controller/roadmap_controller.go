package controller

import (
	"atomic_sensei_backend/internal/service"
	"atomic_sensei_backend/internal/util"
	"strings"

	"github.com/gin-gonic/gin"
)

type RoadmapController struct {
	RoadmapService *service.RoadmapService
}

func NewRoadmapController(roadmapService *service.RoadmapService) *RoadmapController {
	return &RoadmapController{RoadmapService: roadmapService}
}

// CreateRoadmapRequest
// swagger:model CreateRoadmapRequest
type CreateRoadmapRequest struct {
	Goal string `json:"goal"`
}

// TopicProgressRequest
// swagger:model TopicProgressRequest
type TopicProgressRequest struct {
	ModuleIndex *int  `json:"moduleIndex" binding:"required,min=0"`
	TopicIndex  *int  `json:"topicIndex" binding:"required,min=0"`
	Completed   *bool `json:"completed" binding:"required"`
}

// SubtopicProgressRequest
// swagger:model SubtopicProgressRequest
type SubtopicProgressRequest struct {
	ModuleIndex   *int  `json:"moduleIndex" binding:"required,min=0"`
	TopicIndex    *int  `json:"topicIndex" binding:"required,min=0"`
	SubtopicIndex *int  `json:"subtopicIndex" binding:"required,min=0"`
	Completed     *bool `json:"completed" binding:"required"`
}

// CreateRoadmap godoc
// @Summary Generate a roadmap
// @Description Asks the model for a curriculum tailored to the learner and stores it
// @Tags Roadmaps
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body CreateRoadmapRequest true "Learning goal"
// @Success 201 {object} util.Response{data=model.Roadmap} "Created"
// @Failure 400 {object} util.Response "Learning goal is required"
// @Failure 404 {object} util.Response "User not found"
// @Failure 502 {object} util.Response "Error generating roadmap with AI"
// @Router /api/roadmaps [post]
func (c *RoadmapController) CreateRoadmap(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req CreateRoadmapRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Goal) == "" {
		util.BadRequest(ctx, util.ErrGoalRequired.Error())
		return
	}

	roadmap, err := c.RoadmapService.Create(ctx.Request.Context(), userID, strings.TrimSpace(req.Goal))
	if err != nil {
		respondError(ctx, err, "Error generating roadmap with AI")
		return
	}
	util.Created(ctx, roadmap)
}

// ListRoadmaps godoc
// @Summary List roadmaps
// @Description Newest first
// @Tags Roadmaps
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Roadmap} "Success"
// @Router /api/roadmaps [get]
func (c *RoadmapController) ListRoadmaps(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	roadmaps, err := c.RoadmapService.List(userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, roadmaps)
}

// GetRoadmap godoc
// @Summary Get a roadmap
// @Tags Roadmaps
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Roadmap ID"
// @Success 200 {object} util.Response{data=model.Roadmap} "Success"
// @Failure 404 {object} util.Response "Roadmap not found"
// @Router /api/roadmaps/{id} [get]
func (c *RoadmapController) GetRoadmap(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	roadmap, err := c.RoadmapService.Get(userID, id)
	if err != nil {
		respondError(ctx, err, "")
		return
	}
	util.Success(ctx, roadmap)
}

// UpdateTopicProgress godoc
// @Summary Mark a topic complete or incomplete
// @Tags Roadmaps
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Roadmap ID"
// @Param   body body TopicProgressRequest true "Topic coordinate and state"
// @Success 200 {object} util.Response{data=model.Roadmap} "Progress updated"
// @Failure 400 {object} util.Response "Invalid module or topic index"
// @Failure 404 {object} util.Response "Roadmap not found"
// @Router /api/roadmaps/{id}/progress [put]
func (c *RoadmapController) UpdateTopicProgress(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	var req TopicProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	roadmap, err := c.RoadmapService.UpdateTopicProgress(userID, id, *req.ModuleIndex, *req.TopicIndex, *req.Completed)
	if err != nil {
		respondError(ctx, err, "")
		return
	}
	util.SuccessWithMessage(ctx, "Progress updated", roadmap)
}

// UpdateSubtopicProgress godoc
// @Summary Mark a subtopic complete or incomplete
// @Tags Roadmaps
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Roadmap ID"
// @Param   body body SubtopicProgressRequest true "Subtopic coordinate and state"
// @Success 200 {object} util.Response{data=model.Roadmap} "Subtopic progress updated"
// @Failure 400 {object} util.Response "Invalid module, topic, or subtopic index"
// @Failure 404 {object} util.Response "Roadmap not found"
// @Router /api/roadmaps/{id}/progress/subtopic [put]
func (c *RoadmapController) UpdateSubtopicProgress(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	var req SubtopicProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	roadmap, err := c.RoadmapService.UpdateSubtopicProgress(userID, id, *req.ModuleIndex, *req.TopicIndex, *req.SubtopicIndex, *req.Completed)
	if err != nil {
		respondError(ctx, err, "")
		return
	}
	util.SuccessWithMessage(ctx, "Subtopic progress updated", roadmap)
}

// GetProgress godoc
// @Summary Progress summary
// @Tags Roadmaps
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Roadmap ID"
// @Success 200 {object} util.Response{data=service.ProgressSummary} "Success"
// @Failure 404 {object} util.Response "Roadmap not found"
// @Router /api/roadmaps/{id}/progress [get]
func (c *RoadmapController) GetProgress(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	summary, err := c.RoadmapService.Summary(userID, id)
	if err != nil {
		respondError(ctx, err, "")
		return
	}
	util.Success(ctx, summary)
}

// GetNextUnit godoc
// @Summary Unit after a coordinate
// @Description Without module and topic the roadmap's current position is used
// @Tags Roadmaps
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Roadmap ID"
// @Param   module query int false "Module index"
// @Param   topic query int false "Topic index"
// @Param   subtopic query int false "Subtopic index"
// @Success 200 {object} util.Response{data=service.NextUnitInfo} "Success"
// @Failure 400 {object} util.Response "Invalid module or topic index"
// @Failure 404 {object} util.Response "Roadmap not found"
// @Router /api/roadmaps/{id}/next-unit [get]
func (c *RoadmapController) GetNextUnit(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	var indexes [3]*int
	for i, name := range []string{"module", "topic", "subtopic"} {
		raw, present := ctx.GetQuery(name)
		if !present {
			continue
		}
		v, valid := util.ParseIndex(raw)
		if !valid {
			util.BadRequest(ctx, "Invalid "+name+" index")
			return
		}
		indexes[i] = &v
	}

	next, err := c.RoadmapService.NextUnit(userID, id, indexes[0], indexes[1], indexes[2])
	if err != nil {
		respondError(ctx, err, "")
		return
	}
	util.Success(ctx, next)
}

// DeleteRoadmap godoc
// @Summary Delete a roadmap
// @Description Also removes its lessons, quizzes, results and timers
// @Tags Roadmaps
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Roadmap ID"
// @Success 200 {object} util.Response "Roadmap deleted"
// @Failure 404 {object} util.Response "Roadmap not found"
// @Router /api/roadmaps/{id} [delete]
func (c *RoadmapController) DeleteRoadmap(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	if err := c.RoadmapService.Delete(ctx.Request.Context(), userID, id); err != nil {
		respondError(ctx, err, "")
		return
	}
	util.SuccessWithMessage(ctx, "Roadmap deleted", nil)
}

// ExportRoadmap godoc
// @Summary Export a roadmap
// @Description Renders the roadmap as markdown or YAML and uploads it to object storage
// @Tags Roadmaps
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Roadmap ID"
// @Param   format query string false "markdown or yaml" default(markdown)
// @Success 200 {object} util.Response{data=service.ExportResult} "Success"
// @Failure 400 {object} util.Response "Unsupported export format"
// @Failure 404 {object} util.Response "Roadmap not found"
// @Router /api/roadmaps/{id}/export [get]
func (c *RoadmapController) ExportRoadmap(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	result, err := c.RoadmapService.Export(ctx.Request.Context(), userID, id, ctx.Query("format"))
	if err != nil {
		respondError(ctx, err, "")
		return
	}
	util.Success(ctx, result)
}
