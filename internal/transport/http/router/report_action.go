package router

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-user-admin/internal/service"
	httpez "go-user-admin/internal/transport/http/ez"
)

// mountReportActions wires the reporting surface: analytics, export and the
// deliberate error probe used to verify the 500 path end to end.
func mountReportActions(users *gin.RouterGroup, svc *service.UserService, l *zap.Logger) {
	ezUsers := httpez.New(users, l)

	type analyticsQ struct {
		StartDate string `form:"startDate"`
		EndDate   string `form:"endDate"`
	}
	httpez.RegisterAction[analyticsQ, *service.Stats](ezUsers, httpez.Action[analyticsQ, *service.Stats]{
		Method: http.MethodGet,
		Path:   "/analytics",
		Binder: httpez.BindQuery,
		Handler: func(c *gin.Context, in *analyticsQ) (*service.Stats, error) {
			return svc.GetAnalytics(c.Request.Context(), in.StartDate, in.EndDate)
		},
	})

	// export returns the raw rendered payload, not the JSON envelope
	users.GET("/export", func(c *gin.Context) {
		payload, contentType, err := svc.ExportUsers(c.Request.Context(), c.Query("format"))
		if err != nil {
			httpez.Fail(c, l, err)
			return
		}
		c.Data(http.StatusOK, contentType, []byte(payload))
	})

	httpez.RegisterAction[struct{}, struct{}](ezUsers, httpez.Action[struct{}, struct{}]{
		Method: http.MethodGet,
		Path:   "/error",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (struct{}, error) {
			l.Info("triggering a deliberate error for verification")
			return struct{}{}, httpez.Internal("deliberate error for verification", errors.New("deliberate error"))
		},
	})
}
