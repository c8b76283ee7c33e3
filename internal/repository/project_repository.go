package repository

import (
	"errors"

	"gorm.io/gorm"

	"taskhub/internal/models"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// FindByID finds a project by ID with optional preloading
func (r *GormProjectRepository) FindByID(id uint64, preload ...string) (*models.Project, error) {
	var project models.Project
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *GormProjectRepository) memberProjectIDs(userID uint64) *gorm.DB {
	return r.db.Model(&models.ProjectMember{}).
		Select("project_id").
		Where("user_id = ?", userID)
}

// ListVisible lists projects the user owns or is a member of
func (r *GormProjectRepository) ListVisible(userID uint64) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.
		Preload("Owner").
		Preload("Members.User").
		Where("owner_id = ? OR id IN (?)", userID, r.memberProjectIDs(userID)).
		Order("updated_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// VisibleIDs returns the IDs of projects the user owns or is a member of
func (r *GormProjectRepository) VisibleIDs(userID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.db.Model(&models.Project{}).
		Where("owner_id = ? OR id IN (?)", userID, r.memberProjectIDs(userID)).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Update updates a project
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete deletes a project and cascades to its tasks and member rows.
// Activity rows are left untouched.
func (r *GormProjectRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Project{}, id).Error
	})
}

// AddMember adds a member row
func (r *GormProjectRepository) AddMember(member *models.ProjectMember) error {
	return r.db.Create(member).Error
}

// RemoveMember removes a member row
func (r *GormProjectRepository) RemoveMember(projectID, userID uint64) error {
	return r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.ProjectMember{}).Error
}

// IsMember reports whether a member row exists
func (r *GormProjectRepository) IsMember(projectID, userID uint64) (bool, error) {
	var member models.ProjectMember
	err := r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
