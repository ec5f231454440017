package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"panal/internal/authz"
	"panal/internal/models"
	"panal/internal/services"
)

type CategoryHandler struct {
	service  services.CategoryService
	projects services.ProjectService
}

func NewCategoryHandler(service services.CategoryService, projects services.ProjectService) *CategoryHandler {
	return &CategoryHandler{service: service, projects: projects}
}

func (h *CategoryHandler) loadProjectFor(c *gin.Context, projectID int64) *models.Project {
	project, err := h.projects.GetByID(c.Request.Context(), projectID)
	if err != nil {
		log.Printf("[category][load][err] project=%d: %v", projectID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return nil
	}
	if project == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "proyecto no encontrado"})
		return nil
	}
	return project
}

// POST /projects/:id/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	uid := getUserID(c)
	projectID, ok := paramID(c, "id")
	if !ok {
		return
	}
	project := h.loadProjectFor(c, projectID)
	if project == nil {
		return
	}
	if !authz.CanManageContent(uid, project) {
		log.Printf("[category][create][deny] user=%d project=%d", uid, projectID)
		c.JSON(http.StatusForbidden, gin.H{"error": "No tienes permisos para crear columnas"})
		return
	}

	var req struct {
		Name     string `json:"name" binding:"required"`
		Position int    `json:"position"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := &models.Category{
		ProjectID: projectID,
		Name:      strings.TrimSpace(req.Name),
		Position:  req.Position,
	}
	created, err := h.service.Create(c.Request.Context(), category)
	if err != nil {
		log.Printf("[category][create][err] project=%d: %v", projectID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo crear la columna"})
		return
	}
	log.Printf("[category][create][ok] id=%d project=%d", created.ID, projectID)
	c.JSON(http.StatusCreated, created)
}

// GET /projects/:id/board — columnas con sus tareas, en orden
func (h *CategoryHandler) Board(c *gin.Context) {
	uid := getUserID(c)
	projectID, ok := paramID(c, "id")
	if !ok {
		return
	}
	project := h.loadProjectFor(c, projectID)
	if project == nil {
		return
	}
	if !authz.CanReadProject(uid, project) {
		log.Printf("[category][board][deny] user=%d project=%d", uid, projectID)
		c.JSON(http.StatusForbidden, gin.H{"error": "No tienes acceso a este proyecto"})
		return
	}

	board, err := h.service.ListBoard(c.Request.Context(), projectID)
	if err != nil {
		log.Printf("[category][board][err] project=%d: %v", projectID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	c.JSON(http.StatusOK, board)
}

// PUT /categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	uid := getUserID(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	category, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[category][update][err] get id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	if category == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "columna no encontrada"})
		return
	}
	project := h.loadProjectFor(c, category.ProjectID)
	if project == nil {
		return
	}
	if !authz.CanManageContent(uid, project) {
		log.Printf("[category][update][deny] user=%d category=%d", uid, id)
		c.JSON(http.StatusForbidden, gin.H{"error": "No tienes permisos para editar columnas"})
		return
	}

	var req struct {
		Name     *string `json:"name"`
		Position *int    `json:"position"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name != nil {
		category.Name = strings.TrimSpace(*req.Name)
	}
	if req.Position != nil {
		category.Position = *req.Position
	}
	if err := h.service.Update(c.Request.Context(), category); err != nil {
		log.Printf("[category][update][err] save id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	log.Printf("[category][update][ok] id=%d", id)
	c.JSON(http.StatusOK, category)
}

// DELETE /categories/:id — arrastra sus tareas y comentarios
func (h *CategoryHandler) Delete(c *gin.Context) {
	uid := getUserID(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	category, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[category][delete][err] get id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	if category == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "columna no encontrada"})
		return
	}
	project := h.loadProjectFor(c, category.ProjectID)
	if project == nil {
		return
	}
	if !authz.CanDeleteContent(uid, project, false) {
		log.Printf("[category][delete][deny] user=%d category=%d", uid, id)
		c.JSON(http.StatusForbidden, gin.H{"error": "No tienes permisos para eliminar columnas"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		log.Printf("[category][delete][err] id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	log.Printf("[category][delete][ok] id=%d", id)
	c.Status(http.StatusNoContent)
}
