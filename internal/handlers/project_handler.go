package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"panal/internal/authz"
	"panal/internal/models"
	"panal/internal/services"
)

type ProjectHandler struct {
	service services.ProjectService
	users   services.UserService
	reports services.ReportService
}

func NewProjectHandler(service services.ProjectService, users services.UserService, reports services.ReportService) *ProjectHandler {
	return &ProjectHandler{service: service, users: users, reports: reports}
}

// loadProject carga el proyecto con colaboradores o responde 404/500.
func (h *ProjectHandler) loadProject(c *gin.Context, id int64) *models.Project {
	project, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[project][load][err] id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return nil
	}
	if project == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "proyecto no encontrado"})
		return nil
	}
	return project
}

// @Summary      Crear proyecto
// @Description  El creador queda registrado como owner del proyecto
// @Tags         Projects
// @Accept       json
// @Produce      json
// @Success      201  {object}  models.Project
// @Failure      400  {object}  map[string]string
// @Router       /projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	uid := getUserID(c)

	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[project][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project := &models.Project{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		CreatorID:   uid,
	}
	created, err := h.service.Create(c.Request.Context(), project)
	if err != nil {
		log.Printf("[project][create][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo crear el proyecto"})
		return
	}
	log.Printf("[project][create][ok] id=%d creator=%d", created.ID, uid)
	c.JSON(http.StatusCreated, created)
}

// GET /projects — proyectos donde el usuario es creador o colaborador
func (h *ProjectHandler) List(c *gin.Context) {
	uid := getUserID(c)
	projects, err := h.service.ListByUser(c.Request.Context(), uid)
	if err != nil {
		log.Printf("[project][list][err] user=%d: %v", uid, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	c.JSON(http.StatusOK, projects)
}

// GET /projects/:id
func (h *ProjectHandler) GetByID(c *gin.Context) {
	uid := getUserID(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	project := h.loadProject(c, id)
	if project == nil {
		return
	}
	if !authz.CanReadProject(uid, project) {
		log.Printf("[project][get][deny] user=%d project=%d", uid, id)
		c.JSON(http.StatusForbidden, gin.H{"error": "No tienes acceso a este proyecto"})
		return
	}
	c.JSON(http.StatusOK, project)
}

// PUT /projects/:id — solo creador o admin
func (h *ProjectHandler) Update(c *gin.Context) {
	uid := getUserID(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	project := h.loadProject(c, id)
	if project == nil {
		return
	}
	if !authz.CanManageCollaborators(uid, project) {
		log.Printf("[project][update][deny] user=%d project=%d", uid, id)
		c.JSON(http.StatusForbidden, gin.H{"error": "No tienes permisos para editar el proyecto"})
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name != nil {
		project.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if err := h.service.Update(c.Request.Context(), project); err != nil {
		log.Printf("[project][update][err] id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	log.Printf("[project][update][ok] id=%d", id)
	c.JSON(http.StatusOK, project)
}

// DELETE /projects/:id — solo creador o admin; borrado en cascada
func (h *ProjectHandler) Delete(c *gin.Context) {
	uid := getUserID(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	project := h.loadProject(c, id)
	if project == nil {
		return
	}
	if !authz.CanManageCollaborators(uid, project) {
		log.Printf("[project][delete][deny] user=%d project=%d", uid, id)
		c.JSON(http.StatusForbidden, gin.H{"error": "No tienes permisos para eliminar el proyecto"})
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		log.Printf("[project][delete][err] id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}
	log.Printf("[project][delete][ok] id=%d", id)
	c.Status(http.StatusNoContent)
}

// @Summary      Añadir colaborador
// @Tags         Collaborators
// @Accept       json
// @Produce      json
// @Param        id  path  int  true  "ID del proyecto"
// @Success      201  {object}  models.Collaborator
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /projects/{id}/collaborators [post]
func (h *ProjectHandler) AddCollaborator(c *gin.Context) {
	uid := getUserID(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	project := h.loadProject(c, id)
	if project == nil {
		return
	}
	if !authz.CanManageCollaborators(uid, project) {
		log.Printf("[project][collab][add][deny] user=%d project=%d", uid, id)
		c.JSON(http.StatusForbidden, gin.H{"error": "No tienes permisos para gestionar colaboradores"})
		return
	}

	var req struct {
		Email string             `json:"email" binding:"required,email"`
		Role  models.ProjectRole `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inviter, err := h.users.GetByID(c.Request.Context(), uid)
	if err != nil || inviter == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error interno"})
		return
	}

	collab, err := h.service.AddCollaborator(c.Request.Context(), project, inviter, req.Email, req.Role)
	if err != nil {
		log.Printf("[project][collab][add][err] project=%d email=%q: %v", id, req.Email, err)
		mapDomainError(c, err)
		return
	}
	log.Printf("[project][collab][add][ok] project=%d user=%d role=%s", id, collab.UserID, collab.Role)
	c.JSON(http.StatusCreated, collab)
}

// PUT /projects/:id/collaborators/:userId — cambio de rol (suelo de admins)
func (h *ProjectHandler) ChangeCollaboratorRole(c *gin.Context) {
	uid := getUserID(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	targetID, ok := paramID(c, "userId")
	if !ok {
		return
	}
	project := h.loadProject(c, id)
	if project == nil {
		return
	}
	if !authz.CanManageCollaborators(uid, project) {
		log.Printf("[project][collab][role][deny] user=%d project=%d", uid, id)
		c.JSON(http.StatusForbidden, gin.H{"error": "No tienes permisos para gestionar colaboradores"})
		return
	}

	var req struct {
		Role models.ProjectRole `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.ChangeCollaboratorRole(c.Request.Context(), project, targetID, req.Role); err != nil {
		log.Printf("[project][collab][role][err] project=%d target=%d role=%s: %v", id, targetID, req.Role, err)
		mapDomainError(c, err)
		return
	}
	log.Printf("[project][collab][role][ok] project=%d target=%d role=%s", id, targetID, req.Role)
	c.JSON(http.StatusOK, gin.H{"message": "rol actualizado"})
}

// DELETE /projects/:id/collaborators/:userId
func (h *ProjectHandler) RemoveCollaborator(c *gin.Context) {
	uid := getUserID(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	targetID, ok := paramID(c, "userId")
	if !ok {
		return
	}
	project := h.loadProject(c, id)
	if project == nil {
		return
	}
	if !authz.CanManageCollaborators(uid, project) {
		log.Printf("[project][collab][remove][deny] user=%d project=%d", uid, id)
		c.JSON(http.StatusForbidden, gin.H{"error": "No tienes permisos para gestionar colaboradores"})
		return
	}

	if err := h.service.RemoveCollaborator(c.Request.Context(), project, targetID); err != nil {
		log.Printf("[project][collab][remove][err] project=%d target=%d: %v", id, targetID, err)
		mapDomainError(c, err)
		return
	}
	log.Printf("[project][collab][remove][ok] project=%d target=%d", id, targetID)
	c.Status(http.StatusNoContent)
}

// GET /projects/:id/report — PDF resumen del proyecto
func (h *ProjectHandler) Report(c *gin.Context) {
	uid := getUserID(c)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	project := h.loadProject(c, id)
	if project == nil {
		return
	}
	if !authz.CanReadProject(uid, project) {
		log.Printf("[project][report][deny] user=%d project=%d", uid, id)
		c.JSON(http.StatusForbidden, gin.H{"error": "No tienes acceso a este proyecto"})
		return
	}

	data, err := h.reports.ProjectReport(c.Request.Context(), project)
	if err != nil {
		log.Printf("[project][report][err] id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo generar el informe"})
		return
	}
	log.Printf("[project][report][ok] id=%d bytes=%d", id, len(data))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="proyecto_%d.pdf"`, id))
	c.Data(http.StatusOK, "application/pdf", data)
}
