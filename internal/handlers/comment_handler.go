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

type CommentHandler struct {
	service       services.CommentService
	tasks         services.TaskService
	notifications services.NotificationService
}

func NewCommentHandler(service services.CommentService, tasks services.TaskService, notifications services.NotificationService) *CommentHandler {
	return &CommentHandler{service: service, tasks: tasks, notifications: notifications}
}

// POST /tasks/:id/comments — cualquier miembro del proyecto puede comentar
func (h *CommentHandler) Create(c *gin.Context) {
	uid := getUserID(c)
	taskID, ok := paramID(c, "id")
	if !ok {
		return
	}

	tp, err := h.tasks.GetWithProject(c.Request.Context(), taskID)
	if err != nil {
		log.Printf("[comment][create][err] get task=%d: %v", taskID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	if tp == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "tarea no encontrada"})
		return
	}
	if !authz.CanReadProject(uid, &tp.Project) {
		log.Printf("[comment][create][deny] user=%d task=%d", uid, taskID)
		c.JSON(http.StatusForbidden, gin.H{"error": "No tienes acceso a esta tarea"})
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment := &models.Comment{
		TaskID:   taskID,
		AuthorID: uid,
		Content:  strings.TrimSpace(req.Content),
	}
	created, err := h.service.Create(c.Request.Context(), comment)
	if err != nil {
		log.Printf("[comment][create][err] task=%d: %v", taskID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo crear el comentario"})
		return
	}
	log.Printf("[comment][create][ok] id=%d task=%d", created.ID, taskID)
	c.JSON(http.StatusCreated, created)

	// aviso al asignado de la tarea, si no es el propio autor
	if h.notifications != nil && tp.Task.AssignedTo != nil && *tp.Task.AssignedTo != uid {
		h.notifications.Notify(c.Request.Context(), *tp.Task.AssignedTo,
			"Nuevo comentario en la tarea «"+tp.Task.Title+"»")
	}
}

// GET /tasks/:id/comments
func (h *CommentHandler) ListByTask(c *gin.Context) {
	uid := getUserID(c)
	taskID, ok := paramID(c, "id")
	if !ok {
		return
	}

	tp, err := h.tasks.GetWithProject(c.Request.Context(), taskID)
	if err != nil {
		log.Printf("[comment][list][err] get task=%d: %v", taskID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	if tp == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "tarea no encontrada"})
		return
	}
	if !authz.CanReadProject(uid, &tp.Project) {
		c.JSON(http.StatusForbidden, gin.H{"error": "No tienes acceso a esta tarea"})
		return
	}

	comments, err := h.service.ListByTask(c.Request.Context(), taskID)
	if err != nil {
		log.Printf("[comment][list][err] task=%d: %v", taskID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	c.JSON(http.StatusOK, comments)
}

// PUT /comments/:id — solo el autor
func (h *CommentHandler) Update(c *gin.Context) {
	uid := getUserID(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	cp, err := h.service.GetWithProject(c.Request.Context(), id)
	if err != nil {
		log.Printf("[comment][update][err] get id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	if cp == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "comentario no encontrado"})
		return
	}
	if !authz.CanEditComment(uid, &cp.Comment) {
		log.Printf("[comment][update][deny] user=%d comment=%d", uid, id)
		c.JSON(http.StatusForbidden, gin.H{"error": "Solo el autor puede editar el comentario"})
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment := cp.Comment
	comment.Content = strings.TrimSpace(req.Content)
	if err := h.service.Update(c.Request.Context(), &comment); err != nil {
		log.Printf("[comment][update][err] save id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	log.Printf("[comment][update][ok] id=%d", id)
	c.JSON(http.StatusOK, comment)
}

// DELETE /comments/:id — el autor, o un admin/creador del proyecto
func (h *CommentHandler) Delete(c *gin.Context) {
	uid := getUserID(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	cp, err := h.service.GetWithProject(c.Request.Context(), id)
	if err != nil {
		log.Printf("[comment][delete][err] get id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	if cp == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "comentario no encontrado"})
		return
	}
	if !authz.CanDeleteComment(uid, &cp.Comment, &cp.Project) {
		log.Printf("[comment][delete][deny] user=%d comment=%d", uid, id)
		c.JSON(http.StatusForbidden, gin.H{"error": "No tienes permisos para eliminar este comentario"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		log.Printf("[comment][delete][err] id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	log.Printf("[comment][delete][ok] id=%d", id)
	c.Status(http.StatusNoContent)
}
