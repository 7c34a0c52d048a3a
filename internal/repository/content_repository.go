package repository

import (
	"atomic_sensei_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type ContentRepository struct {
	DB *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{DB: db}
}

func (r *ContentRepository) Create(content *model.Content) error {
	return r.DB.Create(content).Error
}

func (r *ContentRepository) FindByIDForUser(id, userID uint) (*model.Content, error) {
	var content model.Content
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&content).Error
	return &content, err
}

// FindByUnit looks up the lesson at a roadmap coordinate. A nil subtopic
// index matches topic level lessons only.
func (r *ContentRepository) FindByUnit(roadmapID, userID uint, ref model.UnitRef) (*model.Content, error) {
	var content model.Content
	err := unitScope(r.DB, roadmapID, ref).
		Where("user_id = ?", userID).
		First(&content).Error
	return &content, err
}

func (r *ContentRepository) ListByRoadmap(roadmapID, userID uint) ([]model.Content, error) {
	var contents []model.Content
	err := r.DB.Where("roadmap_id = ? AND user_id = ?", roadmapID, userID).
		Order("module_index, topic_index, subtopic_index").
		Find(&contents).Error
	return contents, err
}

func (r *ContentRepository) Save(content *model.Content) error {
	return r.DB.Save(content).Error
}

func (r *ContentRepository) RecordView(id uint, at time.Time) error {
	return r.DB.Model(&model.Content{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"view_count":  gorm.Expr("view_count + ?", 1),
			"last_viewed": at,
		}).Error
}

func (r *ContentRepository) Delete(content *model.Content) error {
	return r.DB.Delete(content).Error
}

func unitScope(db *gorm.DB, roadmapID uint, ref model.UnitRef) *gorm.DB {
	q := db.Where("roadmap_id = ? AND module_index = ? AND topic_index = ?", roadmapID, ref.ModuleIndex, ref.TopicIndex)
	if ref.SubtopicIndex != nil {
		return q.Where("subtopic_index = ?", *ref.SubtopicIndex)
	}
	return q.Where("subtopic_index IS NULL")
}
