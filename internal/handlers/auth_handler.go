package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"panal/internal/middleware"
	"panal/internal/models"
	"panal/internal/services"
	"panal/internal/utils"
)

type AuthHandler struct {
	userService services.UserService
	authService services.AuthService
	accessTTL   time.Duration
	refreshTTL  time.Duration
}

func NewAuthHandler(userService services.UserService, authService services.AuthService, accessTTL, refreshTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		authService: authService,
		accessTTL:   accessTTL,
		refreshTTL:  refreshTTL,
	}
}

// @Summary      Iniciar sesión
// @Description  Autentica al usuario y devuelve los tokens de acceso
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Credenciales"
// @Success      200    {object}  map[string]interface{}
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[auth][login][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	email := strings.TrimSpace(req.Email)
	log.Printf("[auth][login] attempt email=%q", email)

	user, err := h.userService.GetByEmail(c.Request.Context(), email)
	if err != nil {
		log.Printf("[auth][login][err] lookup email=%q: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	if user == nil || !h.authService.CheckPassword(user.PasswordHash, strings.TrimSpace(req.Password)) {
		log.Printf("[auth][login][deny] email=%q", email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email o contraseña incorrectos"})
		return
	}

	accessToken, err := h.issueAccessToken(user)
	if err != nil {
		log.Printf("[auth][login][err] sign access token userID=%d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo generar el token"})
		return
	}

	rt, err := utils.NewRefreshToken(32)
	if err != nil {
		log.Printf("[auth][login][err] new refresh token userID=%d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo generar el token"})
		return
	}
	rtExp := time.Now().Add(h.refreshTTL)
	if err := h.userService.UpdateRefresh(c.Request.Context(), user.ID, rt, rtExp); err != nil {
		log.Printf("[auth][login][err] store refresh token userID=%d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo guardar el token"})
		return
	}

	log.Printf("[auth][login][ok] userID=%d", user.ID)
	c.JSON(http.StatusOK, gin.H{
		"user":          user, // PasswordHash lleva json:"-"
		"access_token":  accessToken,
		"refresh_token": rt,
	})
}

// @Summary      Renovar tokens
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Router       /refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.GetByRefreshToken(c.Request.Context(), strings.TrimSpace(req.RefreshToken))
	if err != nil {
		log.Printf("[auth][refresh][err] lookup: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	if user == nil || user.RefreshExpiresAt == nil || user.RefreshExpiresAt.Before(time.Now()) {
		log.Printf("[auth][refresh][deny] token inválido o caducado")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token inválido o caducado"})
		return
	}

	accessToken, err := h.issueAccessToken(user)
	if err != nil {
		log.Printf("[auth][refresh][err] sign access token userID=%d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo generar el token"})
		return
	}

	// rotación del refresh
	rt, err := utils.NewRefreshToken(32)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo generar el token"})
		return
	}
	rtExp := time.Now().Add(h.refreshTTL)
	if err := h.userService.UpdateRefresh(c.Request.Context(), user.ID, rt, rtExp); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo guardar el token"})
		return
	}

	log.Printf("[auth][refresh][ok] userID=%d", user.ID)
	c.JSON(http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": rt,
	})
}

func (h *AuthHandler) issueAccessToken(user *models.User) (string, error) {
	claims := &middleware.Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(h.accessTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(middleware.JWTKey())
}
