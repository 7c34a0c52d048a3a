package repository

import (
	"atomic_sensei_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type TimerRepository struct {
	DB *gorm.DB
}

func NewTimerRepository(db *gorm.DB) *TimerRepository {
	return &TimerRepository{DB: db}
}

func (r *TimerRepository) Create(timer *model.Timer) error {
	return r.DB.Create(timer).Error
}

func (r *TimerRepository) Save(timer *model.Timer) error {
	return r.DB.Save(timer).Error
}

func (r *TimerRepository) FindByIDForUser(id, userID uint) (*model.Timer, error) {
	var timer model.Timer
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&timer).Error
	return &timer, err
}

func pending(db *gorm.DB) *gorm.DB {
	return db.Where("active = ? AND content_delivered = ?", true, false)
}

// FindActive lists pending timers, soonest first.
func (r *TimerRepository) FindActive(userID uint) ([]model.Timer, error) {
	var timers []model.Timer
	err := pending(r.DB).
		Where("user_id = ?", userID).
		Order("next_content_delivery ASC").
		Find(&timers).Error
	return timers, err
}

// FindFirstDue returns the earliest pending timer that is due at now.
func (r *TimerRepository) FindFirstDue(userID uint, now time.Time) (*model.Timer, error) {
	var timer model.Timer
	err := pending(r.DB).
		Where("user_id = ? AND next_content_delivery <= ?", userID, now).
		Order("next_content_delivery ASC").
		First(&timer).Error
	return &timer, err
}

// FindDueUnnotified scans every user for due timers that have not raised
// a reminder yet.
func (r *TimerRepository) FindDueUnnotified(now time.Time, limit int) ([]model.Timer, error) {
	var timers []model.Timer
	err := pending(r.DB).
		Where("notification_sent = ? AND next_content_delivery <= ?", false, now).
		Order("next_content_delivery ASC").
		Limit(limit).
		Find(&timers).Error
	return timers, err
}

func (r *TimerRepository) FindDelivered(userID uint, limit int) ([]model.Timer, error) {
	var timers []model.Timer
	err := r.DB.Where("user_id = ? AND content_delivered = ?", userID, true).
		Order("content_delivered_at DESC").
		Limit(limit).
		Find(&timers).Error
	return timers, err
}

// DeactivatePending switches off every pending timer of a roadmap.
func (r *TimerRepository) DeactivatePending(userID, roadmapID uint) error {
	return pending(r.DB.Model(&model.Timer{})).
		Where("user_id = ? AND roadmap_id = ?", userID, roadmapID).
		Update("active", false).Error
}

func (r *TimerRepository) Delete(timer *model.Timer) error {
	return r.DB.Delete(timer).Error
}
