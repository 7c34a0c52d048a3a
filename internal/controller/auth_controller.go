package controller

import (
	"atomic_sensei_backend/internal/service"
	"atomic_sensei_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{
		AuthService: authService,
	}
}

// Register godoc
// @Summary Register a new learner
// @Description Creates an account and returns a signed token
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param   body body service.RegisterInput true "Account details"
// @Success 201 {object} util.Response{data=service.AuthResult} "Created"
// @Failure 400 {object} util.Response "Invalid request"
// @Failure 409 {object} util.Response "User already exists"
// @Failure 500 {object} util.Response "Internal server error"
// @Router /api/auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req service.RegisterInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AuthService.Register(req)
	if err != nil {
		respondError(ctx, err, "")
		return
	}
	util.Created(ctx, result)
}

// Login godoc
// @Summary Log in
// @Description Verifies credentials, records activity and returns a signed token
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param   body body service.LoginInput true "Credentials"
// @Success 200 {object} util.Response{data=service.AuthResult} "Success"
// @Failure 400 {object} util.Response "Invalid request"
// @Failure 401 {object} util.Response "Invalid email or password"
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req service.LoginInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AuthService.Login(req)
	if err != nil {
		respondError(ctx, err, "")
		return
	}
	util.Success(ctx, result)
}
