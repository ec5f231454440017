package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"panal/internal/models"
	"panal/internal/services"
)

type UserHandler struct {
	service services.UserService
}

func NewUserHandler(service services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// @Summary      Registro de usuario
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Success      201  {object}  models.User
// @Failure      400  {object}  map[string]string
// @Router       /register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		FullName string `json:"fullname" binding:"required"`
		Password string `json:"password" binding:"required,min=6"`
		Avatar   string `json:"avatar"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[user][register][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := &models.User{
		Email:    strings.TrimSpace(req.Email),
		FullName: strings.TrimSpace(req.FullName),
		Avatar:   req.Avatar,
	}
	if err := h.service.Register(c.Request.Context(), user, req.Password); err != nil {
		log.Printf("[user][register][err] email=%q: %v", req.Email, err)
		mapDomainError(c, err)
		return
	}
	log.Printf("[user][register][ok] id=%d email=%q", user.ID, user.Email)
	c.JSON(http.StatusCreated, user)
}

// GET /users/me
func (h *UserHandler) Me(c *gin.Context) {
	uid := getUserID(c)
	user, err := h.service.GetByID(c.Request.Context(), uid)
	if err != nil {
		log.Printf("[user][me][err] id=%d: %v", uid, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "usuario no encontrado"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// PUT /users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	uid := getUserID(c)

	var req struct {
		FullName       *string `json:"fullname"`
		Avatar         *string `json:"avatar"`
		TelegramChatID *int64  `json:"telegram_chat_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.service.GetByID(c.Request.Context(), uid)
	if err != nil || user == nil {
		log.Printf("[user][updateMe][err] id=%d: %v", uid, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	if req.FullName != nil {
		user.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}
	if req.TelegramChatID != nil {
		user.TelegramChatID = *req.TelegramChatID
	}
	if err := h.service.Update(c.Request.Context(), user); err != nil {
		log.Printf("[user][updateMe][err] save id=%d: %v", uid, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	log.Printf("[user][updateMe][ok] id=%d", uid)
	c.JSON(http.StatusOK, user)
}

// GET /users?q=... — búsqueda por email para invitar colaboradores
func (h *UserHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "falta el parámetro q"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	users, err := h.service.SearchByEmail(c.Request.Context(), q, limit)
	if err != nil {
		log.Printf("[user][search][err] q=%q: %v", q, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// GET /admin/users — solo rol global admin
func (h *UserHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	users, err := h.service.List(c.Request.Context(), limit, offset)
	if err != nil {
		log.Printf("[user][list][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// DELETE /admin/users/:id — solo rol global admin
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		log.Printf("[user][delete][err] id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	log.Printf("[user][delete][ok] id=%d", id)
	c.Status(http.StatusNoContent)
}
