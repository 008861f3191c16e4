package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"backoffice/internal/domain/models"
	"backoffice/internal/http/middleware"
	"backoffice/internal/pagination"
	"backoffice/internal/repositories"
	"backoffice/internal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// GET /api/v1/admin/users?q=&page=&perPage=
func GetUsers(c *gin.Context) {
	p := pagination.Normalize(c.Query("page"), c.Query("perPage"))
	repo := repositories.UserRepository{}

	users, total, err := repo.List(c.Query("q"), p)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list users", err)
		return
	}

	out := make([]models.PublicUser, 0, len(users))
	for i := range users {
		out = append(out, users[i].ToPublic())
	}
	c.JSON(http.StatusOK, gin.H{
		"data":    out,
		"total":   total,
		"page":    p.Page,
		"perPage": p.PerPage,
	})
}

// GET /api/v1/admin/users/:id
func GetUserByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	user, err := repositories.UserRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": user.ToPublic()})
}

type createUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role"`
}

// POST /api/v1/admin/users
func CreateUser(c *gin.Context) {
	var req createUserRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = "user"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to hash password", err)
		return
	}

	repo := repositories.UserRepository{}
	id, err := repo.Create(strings.TrimSpace(req.Name), strings.TrimSpace(req.Email), string(hash), role)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	auditAction(c, "users.create", "users", fmt.Sprintf("id=%d email=%s", id, req.Email))
	c.JSON(http.StatusCreated, gin.H{"data": gin.H{"id": id}})
}

// PATCH /api/v1/admin/users/:id
func UpdateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var patch repositories.UserPatch
	if !BindJSONOrError(c, &patch) {
		return
	}

	repo := repositories.UserRepository{}
	if err := repo.Update(id, patch); err != nil {
		RespondDomainError(c, err)
		return
	}

	user, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	auditAction(c, "users.update", "users", fmt.Sprintf("id=%d", id))
	c.JSON(http.StatusOK, gin.H{"data": user.ToPublic()})
}

// DELETE /api/v1/admin/users/:id
func DeleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := (repositories.UserRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	auditAction(c, "users.delete", "users", fmt.Sprintf("id=%d", id))
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": id}})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid id", err)
		return 0, false
	}
	return id, true
}

// auditAction records an admin mutation; failures are logged, never fatal.
func auditAction(c *gin.Context, action, resource, detail string) {
	actor, _ := middleware.CurrentAdmin(c)
	reqID := middleware.GetRequestID(c)
	if _, err := (repositories.AuditRepository{}).Insert(actor.ID, action, resource, detail); err != nil {
		utils.LogError(reqID, "audit", action, err)
	}
}
