package service

import (
	"atomic_sensei_backend/internal/config"
	"atomic_sensei_backend/internal/model"
	"atomic_sensei_backend/internal/repository"
	"atomic_sensei_backend/internal/util"
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
	Now      func() time.Time
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
		Now:      time.Now,
	}
}

type RegisterInput struct {
	Name                string                     `json:"name" binding:"required,max=100"`
	Email               string                     `json:"email" binding:"required,email"`
	Password            string                     `json:"password" binding:"required,min=6"`
	Age                 *int                       `json:"age" binding:"omitempty,min=1,max=120"`
	EducationLevel      model.EducationLevel       `json:"educationLevel" binding:"omitempty,oneof=primary middle high undergraduate graduate other"`
	LearningPreferences *PreferencesPatch          `json:"learningPreferences"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(in RegisterInput) (*AuthResult, error) {
	email := normalizeEmail(in.Email)
	_, err := s.UserRepo.FindByEmail(email)
	if err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:                strings.TrimSpace(in.Name),
		Email:               email,
		Password:            string(hashedPassword),
		Age:                 in.Age,
		EducationLevel:      in.EducationLevel,
		LearningPreferences: model.DefaultLearningPreferences(),
		LastActive:          s.Now(),
	}
	if user.EducationLevel == "" {
		user.EducationLevel = model.EducationOther
	}
	if in.LearningPreferences != nil {
		mergePreferences(&user.LearningPreferences, *in.LearningPreferences)
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) Login(in LoginInput) (*AuthResult, error) {
	user, err := s.UserRepo.FindByEmail(normalizeEmail(in.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}

	user.LastActive = s.Now()
	if err := s.UserRepo.UpdateLastActive(user.ID, user.LastActive); err != nil {
		return nil, err
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) GetCurrentUser(c *gin.Context) *model.User {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		return nil
	}

	user, err := s.UserRepo.FindByID(claims.UserID)
	if err != nil {
		return nil
	}
	return user
}
