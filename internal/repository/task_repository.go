package repository

import (
	"time"

	"gorm.io/gorm"

	"taskhub/internal/models"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves tasks matching the filter, newest first
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, error) {
	if len(filter.ProjectIDs) == 0 {
		return []models.Task{}, nil
	}

	query := r.db.Model(&models.Task{}).Where("project_id IN ?", filter.ProjectIDs)

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}
	if filter.AssigneeID != nil {
		query = query.Where("assignee_id = ?", *filter.AssigneeID)
	}

	var tasks []models.Task
	err := query.
		Preload("Project").
		Preload("Assignee").
		Preload("Creator").
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete deletes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Task{}, id).Error
}

// CountByStatus counts a project's tasks grouped by status
func (r *GormTaskRepository) CountByStatus(projectID uint64) (TaskCounts, error) {
	rows := []struct {
		Status models.TaskStatus
		Count  int64
	}{}

	err := r.db.Model(&models.Task{}).
		Select("status, COUNT(*) AS count").
		Where("project_id = ?", projectID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return TaskCounts{}, err
	}

	var counts TaskCounts
	for _, row := range rows {
		switch row.Status {
		case models.TaskStatusTodo:
			counts.Todo = row.Count
		case models.TaskStatusInProgress:
			counts.InProgress = row.Count
		case models.TaskStatusCompleted:
			counts.Completed = row.Count
		}
	}
	return counts, nil
}

// Stats aggregates task counts across the given projects
func (r *GormTaskRepository) Stats(projectIDs []uint64) (TaskStats, error) {
	stats := TaskStats{
		ByPriority: map[models.TaskPriority]int64{
			models.TaskPriorityLow:    0,
			models.TaskPriorityMedium: 0,
			models.TaskPriorityHigh:   0,
		},
	}

	if len(projectIDs) == 0 {
		return stats, nil
	}

	scoped := func() *gorm.DB {
		return r.db.Model(&models.Task{}).Where("project_id IN ?", projectIDs)
	}

	statusRows := []struct {
		Status models.TaskStatus
		Count  int64
	}{}
	if err := scoped().
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&statusRows).Error; err != nil {
		return stats, err
	}
	for _, row := range statusRows {
		stats.Total += row.Count
		switch row.Status {
		case models.TaskStatusTodo:
			stats.Todo = row.Count
		case models.TaskStatusInProgress:
			stats.InProgress = row.Count
		case models.TaskStatusCompleted:
			stats.Completed = row.Count
		}
	}

	priorityRows := []struct {
		Priority models.TaskPriority
		Count    int64
	}{}
	if err := scoped().
		Select("priority, COUNT(*) AS count").
		Group("priority").
		Scan(&priorityRows).Error; err != nil {
		return stats, err
	}
	for _, row := range priorityRows {
		stats.ByPriority[row.Priority] = row.Count
	}

	now := time.Now()
	nextWeek := now.Add(7 * 24 * time.Hour)

	if err := scoped().
		Where("due_date >= ? AND due_date <= ?", now, nextWeek).
		Where("status <> ?", models.TaskStatusCompleted).
		Count(&stats.Upcoming).Error; err != nil {
		return stats, err
	}

	if err := scoped().
		Where("due_date < ?", now).
		Where("status <> ?", models.TaskStatusCompleted).
		Count(&stats.Overdue).Error; err != nil {
		return stats, err
	}

	return stats, nil
}
