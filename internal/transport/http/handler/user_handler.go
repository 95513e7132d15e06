package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-user-admin/internal/domain"
	"go-user-admin/internal/service"
	"go-user-admin/internal/transport/http/ez"
	resp "go-user-admin/internal/transport/http/response"
)

type UserHandler struct {
	svc *service.UserService
	log *zap.Logger
}

func NewUserHandler(svc *service.UserService, l *zap.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: l}
}

type userRequest struct {
	Name       string `json:"name" binding:"required,min=2,max=100"`
	Email      string `json:"email" binding:"required,email"`
	Role       string `json:"role" binding:"required"`
	Phone      string `json:"phone" binding:"omitempty,max=32"`
	Department string `json:"department" binding:"omitempty,max=64"`
}

func (r *userRequest) toUser() *domain.User {
	return &domain.User{
		Name:       r.Name,
		Email:      r.Email,
		Role:       r.Role,
		Phone:      r.Phone,
		Department: r.Department,
	}
}

// bulkItem carries no binding tags: one malformed item must not reject the
// whole batch, so per-item validation is left to the service and tallied.
type bulkItem struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
}

type operationRequest struct {
	Operation string `json:"operation" binding:"required"`
}

// GET /users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.svc.GetAllUsers(c.Request.Context())
	if err != nil {
		ez.Fail(c, h.log, err)
		return
	}
	resp.OK(c, http.StatusOK, users, "")
}

// GET /users/:id
func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.svc.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		ez.Fail(c, h.log, err)
		return
	}
	resp.OK(c, http.StatusOK, u, "")
}

// GET /users/by-email?email=...
func (h *UserHandler) GetByEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		resp.Fail(c, http.StatusBadRequest, "email query parameter is required")
		return
	}
	u, err := h.svc.GetUserByEmail(c.Request.Context(), email)
	if err != nil {
		ez.Fail(c, h.log, err)
		return
	}
	resp.OK(c, http.StatusOK, u, "")
}

// GET /users/by-role/:role
func (h *UserHandler) ListByRole(c *gin.Context) {
	users, err := h.svc.GetUsersByRole(c.Request.Context(), c.Param("role"))
	if err != nil {
		ez.Fail(c, h.log, err)
		return
	}
	resp.OK(c, http.StatusOK, users, "")
}

// GET /users/count
func (h *UserHandler) Count(c *gin.Context) {
	n, err := h.svc.GetUserCount(c.Request.Context())
	if err != nil {
		ez.Fail(c, h.log, err)
		return
	}
	resp.OK(c, http.StatusOK, gin.H{"count": n}, "")
}

// POST /users
func (h *UserHandler) Create(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	u, err := h.svc.CreateUser(c.Request.Context(), req.toUser())
	if err != nil {
		ez.Fail(c, h.log, err)
		return
	}
	resp.OK(c, http.StatusCreated, u, "user created")
}

// PUT /users/:id
func (h *UserHandler) Update(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	u, err := h.svc.UpdateUser(c.Request.Context(), c.Param("id"), req.toUser())
	if err != nil {
		ez.Fail(c, h.log, err)
		return
	}
	resp.OK(c, http.StatusOK, u, "user updated")
}

// DELETE /users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		ez.Fail(c, h.log, err)
		return
	}
	resp.OK(c, http.StatusOK, nil, "user deleted")
}

// PATCH /users/:id/activate
func (h *UserHandler) Activate(c *gin.Context) {
	u, err := h.svc.ActivateUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		ez.Fail(c, h.log, err)
		return
	}
	resp.OK(c, http.StatusOK, u, "user activated")
}

// PATCH /users/:id/deactivate
func (h *UserHandler) Deactivate(c *gin.Context) {
	u, err := h.svc.DeactivateUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		ez.Fail(c, h.log, err)
		return
	}
	resp.OK(c, http.StatusOK, u, "user deactivated")
}

// GET /users/search?name=&email=&role=&department=&active=&page=&size=
func (h *UserHandler) Search(c *gin.Context) {
	crit := service.Criteria{
		Name:       c.Query("name"),
		Email:      c.Query("email"),
		Role:       c.Query("role"),
		Department: c.Query("department"),
	}
	if raw := c.Query("active"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			resp.Fail(c, http.StatusBadRequest, "active must be a boolean")
			return
		}
		crit.Active = &b
	}

	page, err := intQuery(c, "page", 0)
	if err != nil {
		resp.Fail(c, http.StatusBadRequest, "page must be an integer")
		return
	}
	size, err := intQuery(c, "size", 20)
	if err != nil {
		resp.Fail(c, http.StatusBadRequest, "size must be an integer")
		return
	}

	result, err := h.svc.SearchUsers(c.Request.Context(), crit, page, size)
	if err != nil {
		ez.Fail(c, h.log, err)
		return
	}
	resp.OK(c, http.StatusOK, result, "")
}

// POST /users/bulk
func (h *UserHandler) BulkCreate(c *gin.Context) {
	var reqs []bulkItem
	if err := c.ShouldBindJSON(&reqs); err != nil {
		resp.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	items := make([]domain.User, 0, len(reqs))
	for i := range reqs {
		items = append(items, domain.User{
			Name:       reqs[i].Name,
			Email:      reqs[i].Email,
			Role:       reqs[i].Role,
			Phone:      reqs[i].Phone,
			Department: reqs[i].Department,
		})
	}
	result, err := h.svc.BulkCreateUsers(c.Request.Context(), items)
	if err != nil {
		ez.Fail(c, h.log, err)
		return
	}
	resp.OK(c, http.StatusCreated, result, "bulk create finished")
}

// POST /users/:id/operations
func (h *UserHandler) ApplyOperation(c *gin.Context) {
	var req operationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	u, err := h.svc.ApplyOperation(c.Request.Context(), c.Param("id"), req.Operation)
	if err != nil {
		ez.Fail(c, h.log, err)
		return
	}
	resp.OK(c, http.StatusOK, u, "operation applied")
}

func intQuery(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
