package services

import (
	"fmt"

	"taskhub/internal/models"
	"taskhub/internal/repository"
)

// StatsSummary is the dashboard statistics payload.
type StatsSummary struct {
	TotalProjects     int64                         `json:"totalProjects"`
	TotalTasks        int64                         `json:"totalTasks"`
	CompletedTasks    int64                         `json:"completedTasks"`
	InProgressTasks   int64                         `json:"inProgressTasks"`
	TodoTasks         int64                         `json:"todoTasks"`
	TasksByPriority   map[models.TaskPriority]int64 `json:"tasksByPriority"`
	UpcomingDeadlines int64                         `json:"upcomingDeadlines"`
	OverdueTasks      int64                         `json:"overdueTasks"`
}

// StatsService computes read-only aggregates over the caller's visible
// projects.
type StatsService struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
}

// NewStatsService creates a new StatsService.
func NewStatsService(projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository) *StatsService {
	return &StatsService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
	}
}

// Summary aggregates project and task counts. A caller with no visible
// projects gets all zeros.
func (s *StatsService) Summary(userID uint64) (*StatsSummary, error) {
	projectIDs, err := s.projectRepo.VisibleIDs(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve visible projects: %w", err)
	}

	taskStats, err := s.taskRepo.Stats(projectIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate tasks: %w", err)
	}

	return &StatsSummary{
		TotalProjects:     int64(len(projectIDs)),
		TotalTasks:        taskStats.Total,
		CompletedTasks:    taskStats.Completed,
		InProgressTasks:   taskStats.InProgress,
		TodoTasks:         taskStats.Todo,
		TasksByPriority:   taskStats.ByPriority,
		UpcomingDeadlines: taskStats.Upcoming,
		OverdueTasks:      taskStats.Overdue,
	}, nil
}
