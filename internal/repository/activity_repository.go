package repository

import (
	"gorm.io/gorm"

	"taskhub/internal/models"
)

// GormActivityRepository is a GORM implementation of ActivityRepository
type GormActivityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &GormActivityRepository{db: db}
}

// Create appends an activity record
func (r *GormActivityRepository) Create(activity *models.Activity) error {
	return r.db.Create(activity).Error
}

// ListFeed returns the most recent entries matching the filter
func (r *GormActivityRepository) ListFeed(filter ActivityFilter) ([]models.Activity, error) {
	query := r.db.Model(&models.Activity{})

	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	} else if len(filter.VisibleProjectIDs) > 0 {
		query = query.Where("project_id IN ? OR user_id = ?", filter.VisibleProjectIDs, filter.ActorID)
	} else {
		query = query.Where("user_id = ?", filter.ActorID)
	}

	var activities []models.Activity
	err := query.
		Preload("User").
		Preload("Project").
		Preload("Task").
		Order("created_at DESC, id DESC").
		Limit(filter.Limit).
		Find(&activities).Error
	if err != nil {
		return nil, err
	}
	return activities, nil
}
