package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"panal/internal/authz"
	"panal/internal/models"
	"panal/internal/services"
)

type TaskHandler struct {
	service       services.TaskService
	categories    services.CategoryService
	projects      services.ProjectService
	notifications services.NotificationService
}

func NewTaskHandler(
	service services.TaskService,
	categories services.CategoryService,
	projects services.ProjectService,
	notifications services.NotificationService,
) *TaskHandler {
	return &TaskHandler{
		service:       service,
		categories:    categories,
		projects:      projects,
		notifications: notifications,
	}
}

// @Summary      Crear tarea
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        id  path  int  true  "ID de la columna"
// @Success      201  {object}  models.Task
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /categories/{id}/tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	uid := getUserID(c)
	categoryID, ok := paramID(c, "id")
	if !ok {
		return
	}

	category, err := h.categories.GetByID(c.Request.Context(), categoryID)
	if err != nil {
		log.Printf("[task][create][err] get category=%d: %v", categoryID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	if category == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "columna no encontrada"})
		return
	}
	project, err := h.projects.GetByID(c.Request.Context(), category.ProjectID)
	if err != nil || project == nil {
		log.Printf("[task][create][err] get project=%d: %v", category.ProjectID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	if !authz.CanManageContent(uid, project) {
		log.Printf("[task][create][deny] user=%d project=%d", uid, project.ID)
		c.JSON(http.StatusForbidden, gin.H{"error": "No tienes permisos para crear tareas"})
		return
	}

	var req struct {
		Title       string              `json:"title" binding:"required"`
		Description string              `json:"description"`
		AssignedTo  *int64              `json:"assigned_to"`
		Priority    models.TaskPriority `json:"priority"`
		Status      models.TaskStatus   `json:"status"`
		DueDate     string              `json:"due_date"` // RFC3339
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[task][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Priority != "" && !models.IsValidTaskPriority(req.Priority) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prioridad inválida"})
		return
	}
	if req.Status != "" && !models.IsValidTaskStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "estado inválido"})
		return
	}

	var due *time.Time
	if req.DueDate != "" {
		t, err := time.Parse(time.RFC3339, req.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "due_date inválida (RFC3339)"})
			return
		}
		due = &t
	}

	task := &models.Task{
		CategoryID:  categoryID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		Priority:    req.Priority,
		Status:      req.Status,
		DueDate:     due,
	}
	created, err := h.service.Create(c.Request.Context(), task)
	if err != nil {
		log.Printf("[task][create][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo crear la tarea"})
		return
	}
	log.Printf("[task][create][ok] id=%d category=%d", created.ID, categoryID)
	c.JSON(http.StatusCreated, created)

	h.notifyAssigned(c, created, uid, "Te han asignado la tarea «"+created.Title+"»")
}

// GET /tasks?status=&priority= — las tareas asignadas al usuario autenticado
func (h *TaskHandler) List(c *gin.Context) {
	uid := getUserID(c)

	var filter models.TaskFilter
	if q := c.Query("status"); q != "" {
		status := models.TaskStatus(q)
		if !models.IsValidTaskStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "estado inválido"})
			return
		}
		filter.Status = &status
	}
	if q := c.Query("priority"); q != "" {
		priority := models.TaskPriority(q)
		if !models.IsValidTaskPriority(priority) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "prioridad inválida"})
			return
		}
		filter.Priority = &priority
	}

	tasks, err := h.service.ListAssigned(c.Request.Context(), uid, filter)
	if err != nil {
		log.Printf("[task][list][err] user=%d: %v", uid, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// GET /tasks/:id
func (h *TaskHandler) GetByID(c *gin.Context) {
	uid := getUserID(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	tp, err := h.service.GetWithProject(c.Request.Context(), id)
	if err != nil {
		log.Printf("[task][get][err] id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	if tp == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "tarea no encontrada"})
		return
	}
	if !authz.CanReadProject(uid, &tp.Project) {
		log.Printf("[task][get][deny] user=%d task=%d", uid, id)
		c.JSON(http.StatusForbidden, gin.H{"error": "No tienes acceso a esta tarea"})
		return
	}
	c.JSON(http.StatusOK, tp.Task)
}

// PUT /tasks/:id
//
// Reglas: creador/admin/editor editan cualquier campo. El asignado sin
// permisos de edición solo puede tocar status; cualquier otro campo junto
// a status se rechaza. Pasar a Finalizada mueve la tarea a esa columna.
func (h *TaskHandler) Update(c *gin.Context) {
	uid := getUserID(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	tp, err := h.service.GetWithProject(c.Request.Context(), id)
	if err != nil {
		log.Printf("[task][update][err] get id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	if tp == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "tarea no encontrada"})
		return
	}

	var req struct {
		Title       *string              `json:"title"`
		Description *string              `json:"description"`
		AssignedTo  *int64               `json:"assigned_to"`
		Priority    *models.TaskPriority `json:"priority"`
		Status      *models.TaskStatus   `json:"status"`
		DueDate     *string              `json:"due_date"` // RFC3339; "" lo limpia
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[task][update][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var fields []string
	if req.Title != nil {
		fields = append(fields, "title")
	}
	if req.Description != nil {
		fields = append(fields, "description")
	}
	if req.AssignedTo != nil {
		fields = append(fields, "assigned_to")
	}
	if req.Priority != nil {
		fields = append(fields, "priority")
	}
	if req.Status != nil {
		fields = append(fields, "status")
	}
	if req.DueDate != nil {
		fields = append(fields, "due_date")
	}

	task := tp.Task
	if !authz.CanManageContent(uid, &tp.Project) {
		if !authz.CanEditTaskStatusOnly(uid, &task, fields) {
			log.Printf("[task][update][deny] user=%d task=%d fields=%v", uid, id, fields)
			c.JSON(http.StatusForbidden, gin.H{"error": "No tienes permisos para editar esta tarea"})
			return
		}
	}

	prevAssigned := task.AssignedTo

	if req.Title != nil {
		task.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.AssignedTo != nil {
		task.AssignedTo = req.AssignedTo
	}
	if req.Priority != nil {
		if !models.IsValidTaskPriority(*req.Priority) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "prioridad inválida"})
			return
		}
		task.Priority = *req.Priority
	}
	if req.Status != nil {
		if !models.IsValidTaskStatus(*req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "estado inválido"})
			return
		}
		task.Status = *req.Status
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			task.DueDate = nil
		} else {
			t, err := time.Parse(time.RFC3339, *req.DueDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "due_date inválida"})
				return
			}
			task.DueDate = &t
		}
	}

	updated, err := h.service.Update(c.Request.Context(), &task, tp.Project.ID)
	if err != nil {
		log.Printf("[task][update][err] save id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	log.Printf("[task][update][ok] id=%d status=%q", id, updated.Status)
	c.JSON(http.StatusOK, updated)

	// aviso solo si cambia el asignado
	if req.AssignedTo != nil && (prevAssigned == nil || *prevAssigned != *req.AssignedTo) {
		h.notifyAssigned(c, updated, uid, "Te han asignado la tarea «"+updated.Title+"»")
	}
}

// PUT /tasks/:id/move { "category_id": 3, "position": 2 }
func (h *TaskHandler) Move(c *gin.Context) {
	uid := getUserID(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	tp, err := h.service.GetWithProject(c.Request.Context(), id)
	if err != nil {
		log.Printf("[task][move][err] get id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	if tp == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "tarea no encontrada"})
		return
	}
	if !authz.CanManageContent(uid, &tp.Project) {
		log.Printf("[task][move][deny] user=%d task=%d", uid, id)
		c.JSON(http.StatusForbidden, gin.H{"error": "No tienes permisos para mover tareas"})
		return
	}

	var req struct {
		CategoryID int64 `json:"category_id" binding:"required"`
		Position   int   `json:"position"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	target, err := h.categories.GetByID(c.Request.Context(), req.CategoryID)
	if err != nil {
		log.Printf("[task][move][err] get category=%d: %v", req.CategoryID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	if target == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "columna no encontrada"})
		return
	}

	task := tp.Task
	moved, err := h.service.Move(c.Request.Context(), &task, target, req.Position)
	if err != nil {
		log.Printf("[task][move][err] id=%d -> category=%d: %v", id, req.CategoryID, err)
		mapDomainError(c, err)
		return
	}
	log.Printf("[task][move][ok] id=%d category=%d", id, req.CategoryID)
	c.JSON(http.StatusOK, moved)
}

// DELETE /tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	uid := getUserID(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	tp, err := h.service.GetWithProject(c.Request.Context(), id)
	if err != nil {
		log.Printf("[task][delete][err] get id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	if tp == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "tarea no encontrada"})
		return
	}
	if !authz.CanDeleteContent(uid, &tp.Project, false) {
		log.Printf("[task][delete][deny] user=%d task=%d", uid, id)
		c.JSON(http.StatusForbidden, gin.H{"error": "No tienes permisos para eliminar tareas"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		log.Printf("[task][delete][err] id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	log.Printf("[task][delete][ok] id=%d", id)
	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) notifyAssigned(c *gin.Context, t *models.Task, actorID int64, msg string) {
	if h.notifications == nil || t == nil || t.AssignedTo == nil {
		return
	}
	// no avisamos a quien se asigna a sí mismo
	if *t.AssignedTo == actorID {
		return
	}
	h.notifications.Notify(c.Request.Context(), *t.AssignedTo, msg)
}
