package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"panal/internal/services"
)

type NotificationHandler struct {
	service services.NotificationService
}

func NewNotificationHandler(service services.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// GET /notifications?unread=true — solo las propias
func (h *NotificationHandler) List(c *gin.Context) {
	uid := getUserID(c)
	unreadOnly := c.Query("unread") == "true"

	notifications, err := h.service.ListByUser(c.Request.Context(), uid, unreadOnly)
	if err != nil {
		log.Printf("[notification][list][err] user=%d: %v", uid, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// PUT /notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	uid := getUserID(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	n, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[notification][read][err] id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	if n == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "notificación no encontrada"})
		return
	}
	if n.UserID != uid {
		log.Printf("[notification][read][deny] user=%d notification=%d", uid, id)
		c.JSON(http.StatusForbidden, gin.H{"error": "La notificación no es tuya"})
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), id); err != nil {
		log.Printf("[notification][read][err] save id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notificación leída"})
}

// PUT /notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	uid := getUserID(c)
	if err := h.service.MarkAllRead(c.Request.Context(), uid); err != nil {
		log.Printf("[notification][readAll][err] user=%d: %v", uid, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notificaciones leídas"})
}

// DELETE /notifications/:id
func (h *NotificationHandler) Delete(c *gin.Context) {
	uid := getUserID(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	n, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[notification][delete][err] id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	if n == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "notificación no encontrada"})
		return
	}
	if n.UserID != uid {
		log.Printf("[notification][delete][deny] user=%d notification=%d", uid, id)
		c.JSON(http.StatusForbidden, gin.H{"error": "La notificación no es tuya"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		log.Printf("[notification][delete][err] save id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	log.Printf("[notification][delete][ok] id=%d", id)
	c.Status(http.StatusNoContent)
}
