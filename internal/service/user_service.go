package service

import (
	"atomic_sensei_backend/internal/model"
	"atomic_sensei_backend/internal/repository"
	"atomic_sensei_backend/internal/util"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService handles profile reads and edits for the signed in user.
type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{
		UserRepo: userRepo,
	}
}

// PreferencesPatch carries the learning preferences a client wants to change.
type PreferencesPatch struct {
	PreferredContentType  *model.ContentType `json:"preferredContentType" binding:"omitempty,oneof=text video mixed"`
	PreferredTheme        *string            `json:"preferredTheme" binding:"omitempty,max=50"`
	IsGamificationEnabled *bool              `json:"isGamificationEnabled"`
	PreferredLearningTime *int               `json:"preferredLearningTime" binding:"omitempty,min=1,max=1440"`
}

func mergePreferences(prefs *model.LearningPreferences, patch PreferencesPatch) {
	if patch.PreferredContentType != nil {
		prefs.PreferredContentType = *patch.PreferredContentType
	}
	if patch.PreferredTheme != nil {
		prefs.PreferredTheme = *patch.PreferredTheme
	}
	if patch.IsGamificationEnabled != nil {
		prefs.IsGamificationEnabled = *patch.IsGamificationEnabled
	}
	if patch.PreferredLearningTime != nil {
		prefs.PreferredLearningTime = *patch.PreferredLearningTime
	}
}

type UpdateProfileInput struct {
	Name                *string               `json:"name" binding:"omitempty,min=1,max=100"`
	Age                 *int                  `json:"age" binding:"omitempty,min=1,max=120"`
	EducationLevel      *model.EducationLevel `json:"educationLevel" binding:"omitempty,oneof=primary middle high undergraduate graduate other"`
	LearningPreferences *PreferencesPatch     `json:"learningPreferences"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

func (s *UserService) GetProfile(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies only the fields present in the request.
func (s *UserService) UpdateProfile(id uint, in UpdateProfileInput) (*model.User, error) {
	user, err := s.GetProfile(id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Age != nil {
		user.Age = in.Age
	}
	if in.EducationLevel != nil {
		user.EducationLevel = *in.EducationLevel
	}
	if in.LearningPreferences != nil {
		mergePreferences(&user.LearningPreferences, *in.LearningPreferences)
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ChangePassword(id uint, in ChangePasswordInput) error {
	user, err := s.GetProfile(id)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.CurrentPassword)); err != nil {
		return util.ErrWrongPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.UserRepo.UpdatePassword(user.ID, string(hashedPassword))
}
