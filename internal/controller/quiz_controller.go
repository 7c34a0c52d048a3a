package controller

import (
	"atomic_sensei_backend/internal/service"
	"atomic_sensei_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// GenerateQuiz godoc
// @Summary Generate a quiz
// @Description Builds a quiz from the unit's lesson, or returns the existing one
// @Tags Quizzes
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.GenerateQuizInput true "Roadmap unit"
// @Success 200 {object} util.Response{data=model.Quiz} "Existing quiz"
// @Success 201 {object} util.Response{data=model.Quiz} "Created"
// @Failure 404 {object} util.Response "Content not found"
// @Router /api/quizzes/generate [post]
func (c *QuizController) GenerateQuiz(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req service.GenerateQuizInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, created, err := c.QuizService.Generate(ctx.Request.Context(), userID, req)
	if err != nil {
		respondError(ctx, err, "Error generating quiz with AI")
		return
	}
	if created {
		util.Created(ctx, quiz)
		return
	}
	util.Success(ctx, quiz)
}

// GetQuizByUnit godoc
// @Summary Quiz for a roadmap unit
// @Tags Quizzes
// @Produce  json
// @Security BearerAuth
// @Param   roadmapId path int true "Roadmap ID"
// @Param   m path int true "Module index"
// @Param   t path int true "Topic index"
// @Param   s path int false "Subtopic index"
// @Success 200 {object} util.Response{data=model.Quiz} "Success"
// @Failure 404 {object} util.Response "Quiz not found"
// @Router /api/quizzes/roadmap/{roadmapId}/module/{m}/topic/{t} [get]
// @Router /api/quizzes/roadmap/{roadmapId}/module/{m}/topic/{t}/subtopic/{s} [get]
func (c *QuizController) GetQuizByUnit(ctx *gin.Context) {
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

	quiz, err := c.QuizService.GetByUnit(userID, roadmapID, ref)
	if err != nil {
		respondError(ctx, err, "")
		return
	}
	util.Success(ctx, quiz)
}

// GetQuiz godoc
// @Summary Get a quiz
// @Tags Quizzes
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Quiz ID"
// @Success 200 {object} util.Response{data=model.Quiz} "Success"
// @Failure 404 {object} util.Response "Quiz not found"
// @Router /api/quizzes/{id} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	quiz, err := c.QuizService.Get(userID, id)
	if err != nil {
		respondError(ctx, err, "")
		return
	}
	util.Success(ctx, quiz)
}

// SubmitQuiz godoc
// @Summary Submit answers
// @Description Grades the attempt, advances the roadmap on a pass and schedules the next lesson
// @Tags Quizzes
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Quiz ID"
// @Param   body body service.SubmitQuizInput true "Answers"
// @Success 200 {object} util.Response{data=service.SubmitQuizResult} "Success"
// @Failure 400 {object} util.Response "Invalid request"
// @Failure 404 {object} util.Response "Quiz not found"
// @Router /api/quizzes/{id}/submit [post]
func (c *QuizController) SubmitQuiz(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	var req service.SubmitQuizInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.QuizService.Submit(ctx.Request.Context(), userID, id, req)
	if err != nil {
		respondError(ctx, err, "")
		return
	}
	util.Success(ctx, result)
}

// GetResults godoc
// @Summary Attempts for a quiz
// @Description Newest first
// @Tags Quizzes
// @Produce  json
// @Security BearerAuth
// @Param   quizId path int true "Quiz ID"
// @Success 200 {object} util.Response{data=[]model.QuizResult} "Success"
// @Failure 404 {object} util.Response "Quiz not found"
// @Router /api/quizzes/results/{quizId} [get]
func (c *QuizController) GetResults(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	quizID, ok := paramID(ctx, "quizId")
	if !ok {
		return
	}

	results, err := c.QuizService.Results(userID, quizID)
	if err != nil {
		respondError(ctx, err, "")
		return
	}
	util.Success(ctx, results)
}
