package repository

import (
	"atomic_sensei_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

func (r *QuizRepository) FindByIDForUser(id, userID uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&quiz).Error
	return &quiz, err
}

func (r *QuizRepository) FindByUnit(roadmapID, userID uint, ref model.UnitRef) (*model.Quiz, error) {
	var quiz model.Quiz
	err := unitScope(r.DB, roadmapID, ref).
		Where("user_id = ?", userID).
		First(&quiz).Error
	return &quiz, err
}

type QuizResultRepository struct {
	DB *gorm.DB
}

func NewQuizResultRepository(db *gorm.DB) *QuizResultRepository {
	return &QuizResultRepository{DB: db}
}

func (r *QuizResultRepository) Create(result *model.QuizResult) error {
	return r.DB.Create(result).Error
}

func (r *QuizResultRepository) FindByQuiz(quizID, userID uint) ([]model.QuizResult, error) {
	var results []model.QuizResult
	err := r.DB.Where("quiz_id = ? AND user_id = ?", quizID, userID).
		Order("completed_at DESC").
		Find(&results).Error
	return results, err
}

// LatestForQuiz returns the most recent attempt, or gorm.ErrRecordNotFound.
func (r *QuizResultRepository) LatestForQuiz(quizID, userID uint) (*model.QuizResult, error) {
	var result model.QuizResult
	err := r.DB.Where("quiz_id = ? AND user_id = ?", quizID, userID).
		Order("completed_at DESC").
		First(&result).Error
	return &result, err
}
