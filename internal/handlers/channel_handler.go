package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"panal/internal/authz"
	"panal/internal/models"
	"panal/internal/realtime"
	"panal/internal/services"
)

type ChannelHandler struct {
	service  services.ChannelService
	projects services.ProjectService
	hub      *realtime.ChannelHub
}

func NewChannelHandler(service services.ChannelService, projects services.ProjectService, hub *realtime.ChannelHub) *ChannelHandler {
	return &ChannelHandler{service: service, projects: projects, hub: hub}
}

func (h *ChannelHandler) loadProjectFor(c *gin.Context, projectID int64) *models.Project {
	project, err := h.projects.GetByID(c.Request.Context(), projectID)
	if err != nil {
		log.Printf("[channel][load][err] project=%d: %v", projectID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return nil
	}
	if project == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "proyecto no encontrado"})
		return nil
	}
	return project
}

// loadChannel carga el canal y su proyecto, o responde el error.
func (h *ChannelHandler) loadChannel(c *gin.Context, id int64) (*models.Channel, *models.Project) {
	channel, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[channel][load][err] id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return nil, nil
	}
	if channel == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "canal no encontrado"})
		return nil, nil
	}
	project := h.loadProjectFor(c, channel.ProjectID)
	if project == nil {
		return nil, nil
	}
	return channel, project
}

// POST /projects/:id/channels
func (h *ChannelHandler) Create(c *gin.Context) {
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
		log.Printf("[channel][create][deny] user=%d project=%d", uid, projectID)
		c.JSON(http.StatusForbidden, gin.H{"error": "No tienes permisos para crear canales"})
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	channel := &models.Channel{
		ProjectID: projectID,
		Name:      strings.TrimSpace(req.Name),
	}
	created, err := h.service.Create(c.Request.Context(), channel)
	if err != nil {
		log.Printf("[channel][create][err] project=%d: %v", projectID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo crear el canal"})
		return
	}
	log.Printf("[channel][create][ok] id=%d project=%d", created.ID, projectID)
	c.JSON(http.StatusCreated, created)
}

// GET /projects/:id/channels
func (h *ChannelHandler) ListByProject(c *gin.Context) {
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
		c.JSON(http.StatusForbidden, gin.H{"error": "No tienes acceso a este proyecto"})
		return
	}

	channels, err := h.service.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		log.Printf("[channel][list][err] project=%d: %v", projectID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	c.JSON(http.StatusOK, channels)
}

// PUT /channels/:id
func (h *ChannelHandler) Update(c *gin.Context) {
	uid := getUserID(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	channel, project := h.loadChannel(c, id)
	if channel == nil {
		return
	}
	if !authz.CanManageContent(uid, project) {
		log.Printf("[channel][update][deny] user=%d channel=%d", uid, id)
		c.JSON(http.StatusForbidden, gin.H{"error": "No tienes permisos para editar canales"})
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	channel.Name = strings.TrimSpace(req.Name)
	if err := h.service.Update(c.Request.Context(), channel); err != nil {
		log.Printf("[channel][update][err] id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	log.Printf("[channel][update][ok] id=%d", id)
	c.JSON(http.StatusOK, channel)
}

// DELETE /channels/:id — regla estricta: solo creador o admin, el editor no
func (h *ChannelHandler) Delete(c *gin.Context) {
	uid := getUserID(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	channel, project := h.loadChannel(c, id)
	if channel == nil {
		return
	}
	if !authz.CanDeleteContent(uid, project, true) {
		log.Printf("[channel][delete][deny] user=%d channel=%d", uid, id)
		c.JSON(http.StatusForbidden, gin.H{"error": "Solo un administrador puede eliminar canales"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		log.Printf("[channel][delete][err] id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	log.Printf("[channel][delete][ok] id=%d", id)
	c.Status(http.StatusNoContent)
}

// POST /channels/:id/messages
func (h *ChannelHandler) PostMessage(c *gin.Context) {
	uid := getUserID(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	channel, project := h.loadChannel(c, id)
	if channel == nil {
		return
	}
	if !authz.CanReadProject(uid, project) {
		log.Printf("[channel][message][deny] user=%d channel=%d", uid, id)
		c.JSON(http.StatusForbidden, gin.H{"error": "No tienes acceso a este canal"})
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg := &models.ChannelMessage{
		ChannelID: id,
		AuthorID:  uid,
		Content:   strings.TrimSpace(req.Content),
	}
	created, err := h.service.PostMessage(c.Request.Context(), msg)
	if err != nil {
		log.Printf("[channel][message][err] channel=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo enviar el mensaje"})
		return
	}
	log.Printf("[channel][message][ok] id=%d channel=%d", created.ID, id)
	c.JSON(http.StatusCreated, created)

	if h.hub != nil {
		h.hub.Broadcast(created)
	}
}

// GET /channels/:id/messages?limit=50
func (h *ChannelHandler) ListMessages(c *gin.Context) {
	uid := getUserID(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	channel, project := h.loadChannel(c, id)
	if channel == nil {
		return
	}
	if !authz.CanReadProject(uid, project) {
		c.JSON(http.StatusForbidden, gin.H{"error": "No tienes acceso a este canal"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	messages, err := h.service.ListMessages(c.Request.Context(), id, limit)
	if err != nil {
		log.Printf("[channel][messages][err] channel=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	c.JSON(http.StatusOK, messages)
}

// GET /ws/channels/:id — suscripción websocket a los mensajes del canal
func (h *ChannelHandler) Subscribe(c *gin.Context) {
	uid := getUserID(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	channel, project := h.loadChannel(c, id)
	if channel == nil {
		return
	}
	if !authz.CanReadProject(uid, project) {
		c.JSON(http.StatusForbidden, gin.H{"error": "No tienes acceso a este canal"})
		return
	}

	conn, err := realtime.Upgrade(c.Writer, c.Request)
	if err != nil {
		log.Printf("[channel][ws][err] upgrade channel=%d: %v", id, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "no se pudo abrir el websocket"})
		return
	}
	h.hub.Subscribe(id, conn)
	log.Printf("[channel][ws][ok] user=%d channel=%d conns=%d", uid, id, h.hub.Count(id))

	// la conexión queda abierta hasta que el cliente la cierre
	go func() {
		defer h.hub.Unsubscribe(id, conn)
		for {
			var ignored struct{}
			if err := conn.ReadJSON(&ignored); err != nil {
				return
			}
		}
	}()
}
