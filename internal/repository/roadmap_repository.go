package repository

import (
	"atomic_sensei_backend/internal/model"

	"gorm.io/gorm"
)

type RoadmapRepository struct {
	DB *gorm.DB
}

func NewRoadmapRepository(db *gorm.DB) *RoadmapRepository {
	return &RoadmapRepository{DB: db}
}

func (r *RoadmapRepository) Create(roadmap *model.Roadmap) error {
	return r.DB.Create(roadmap).Error
}

// FindByIDForUser only returns roadmaps owned by userID.
func (r *RoadmapRepository) FindByIDForUser(id, userID uint) (*model.Roadmap, error) {
	var roadmap model.Roadmap
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&roadmap).Error
	return &roadmap, err
}

func (r *RoadmapRepository) FindByUser(userID uint) ([]model.Roadmap, error) {
	var roadmaps []model.Roadmap
	err := r.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&roadmaps).Error
	return roadmaps, err
}

func (r *RoadmapRepository) Save(roadmap *model.Roadmap) error {
	return r.DB.Save(roadmap).Error
}

// Delete removes a roadmap together with its lessons, quizzes, results
// and timers.
func (r *RoadmapRepository) Delete(roadmap *model.Roadmap) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{&model.Content{}, &model.Quiz{}, &model.QuizResult{}, &model.Timer{}} {
			if err := tx.Where("roadmap_id = ?", roadmap.ID).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Delete(roadmap).Error
	})
}
