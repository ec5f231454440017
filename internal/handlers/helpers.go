package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"panal/internal/models"
)

// tolerante con los tipos que deja el middleware (int64 / int / float64 / string)
func getInt64FromCtx(c *gin.Context, key string) (int64, bool) {
	v, ok := c.Get(key)
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case int64:
		return t, true
	case int:
		return int64(t), true
	case float64:
		return int64(t), true
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

func getUserID(c *gin.Context) int64 {
	id, _ := getInt64FromCtx(c, "user_id")
	return id
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return 0, false
	}
	return id, true
}

// mapDomainError traduce los errores centinela de models a códigos HTTP.
func mapDomainError(c *gin.Context, err error) {
	switch err {
	case models.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case models.ErrLastAdmin, models.ErrCreatorImmutable, models.ErrDuplicateCollab,
		models.ErrInvalidRole, models.ErrCrossProjectMove, models.ErrEmailTaken:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case models.ErrInvalidCredentials:
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
	}
}
