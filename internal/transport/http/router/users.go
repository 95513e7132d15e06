package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-user-admin/internal/service"
	"go-user-admin/internal/transport/http/handler"
	mdw "go-user-admin/internal/transport/http/middleware"
)

// userModule mounts the user CRUD/search/bulk/operation routes. The
// reporting routes (analytics/export) are mounted separately as ez actions.
type userModule struct {
	h   *handler.UserHandler
	svc *service.UserService
	log *zap.Logger
}

func NewUserModule(svc *service.UserService, l *zap.Logger) APIModule {
	return &userModule{h: handler.NewUserHandler(svc, l), svc: svc, log: l}
}

func (m *userModule) Priority() int { return 10 }

func (m *userModule) MountAPI(api *gin.RouterGroup) {
	users := api.Group("/users")

	users.GET("", m.h.List)
	users.POST("", m.h.Create)
	// bulk writes get a tighter per-client bucket on top of the global limit
	users.POST("/bulk", mdw.RateLimitPerIP(2, 5), m.h.BulkCreate)
	users.GET("/by-email", m.h.GetByEmail)
	users.GET("/by-role/:role", m.h.ListByRole)
	users.GET("/count", m.h.Count)
	users.GET("/search", m.h.Search)

	users.GET("/:id", m.h.Get)
	users.PUT("/:id", m.h.Update)
	users.DELETE("/:id", m.h.Delete)
	users.PATCH("/:id/activate", m.h.Activate)
	users.PATCH("/:id/deactivate", m.h.Deactivate)
	users.POST("/:id/operations", m.h.ApplyOperation)

	mountReportActions(users, m.svc, m.log)
}
