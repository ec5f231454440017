package services

import (
	"context"
	"time"

	"panal/internal/models"
	"panal/internal/pdf"
	"panal/internal/repositories"
)

type ReportService interface {
	// ProjectReport genera el PDF resumen del proyecto: tareas por estado
	// y prioridad, columnas y equipo.
	ProjectReport(ctx context.Context, project *models.Project) ([]byte, error)
}

type reportService struct {
	categories repositories.CategoryRepository
	tasks      repositories.TaskRepository
	generator  pdf.Generator
}

func NewReportService(categories repositories.CategoryRepository, tasks repositories.TaskRepository, generator pdf.Generator) ReportService {
	return &reportService{categories: categories, tasks: tasks, generator: generator}
}

func (s *reportService) ProjectReport(ctx context.Context, project *models.Project) ([]byte, error) {
	categories, err := s.categories.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}

	statusCounts := map[models.TaskStatus]int{}
	priorityCounts := map[models.TaskPriority]int{}
	var reportCategories []pdf.ReportCategory

	for _, cat := range categories {
		tasks, err := s.tasks.ListByCategory(ctx, cat.ID)
		if err != nil {
			return nil, err
		}
		reportCategories = append(reportCategories, pdf.ReportCategory{
			Name:      cat.Name,
			TaskCount: len(tasks),
		})
		for _, t := range tasks {
			statusCounts[t.Status]++
			priorityCounts[t.Priority]++
		}
	}

	creatorName := ""
	var collaborators []pdf.ReportCollaborator
	for _, c := range project.Collaborators {
		name := ""
		if c.User != nil {
			name = c.User.FullName
		}
		if c.UserID == project.CreatorID {
			creatorName = name
		}
		collaborators = append(collaborators, pdf.ReportCollaborator{
			Name: name,
			Role: string(c.Role),
		})
	}

	data := pdf.ProjectReportData{
		ProjectID:   project.ID,
		ProjectName: project.Name,
		Description: project.Description,
		CreatorName: creatorName,
		GeneratedAt: time.Now(),
		Categories:  reportCategories,
		ByStatus: []pdf.StatusCount{
			{Status: string(models.StatusInProgress), Count: statusCounts[models.StatusInProgress]},
			{Status: string(models.StatusPaused), Count: statusCounts[models.StatusPaused]},
			{Status: string(models.StatusDone), Count: statusCounts[models.StatusDone]},
		},
		ByPriority: []pdf.PriorityCount{
			{Priority: string(models.PriorityHigh), Count: priorityCounts[models.PriorityHigh]},
			{Priority: string(models.PriorityMedium), Count: priorityCounts[models.PriorityMedium]},
			{Priority: string(models.PriorityLow), Count: priorityCounts[models.PriorityLow]},
		},
		Collaborators: collaborators,
	}
	return s.generator.GenerateProjectReport(data)
}
