package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/caadpo/genesis-backend/config"
	"github.com/caadpo/genesis-backend/internal/api/handler"
	"github.com/caadpo/genesis-backend/internal/api/middleware"
	"github.com/caadpo/genesis-backend/internal/model"
	"github.com/caadpo/genesis-backend/pkg/jwt"
	"github.com/caadpo/genesis-backend/pkg/redis"
)

// Setup builds the Gin engine with all routes registered. Route-level role
// gates cover the endpoints whose access is role-only; everything
// data-dependent (own unit, own directorate, freeze state) is authorized in
// the service layer.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, cache *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	privileged := middleware.RoleAuth(model.RoleMaster, model.RoleTechnical)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// authentication (no token required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, cache))
		{
			// session
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// accounts
			users := authorized.Group("/users")
			{
				users.GET("", h.User.List)
				users.GET("/:id", h.User.Get)
				users.POST("", privileged, h.User.Create)
				users.PUT("/:id", privileged, h.User.Update)
				users.DELETE("/:id", privileged, h.User.Delete)
			}

			// organizational registry
			directorates := authorized.Group("/directorates")
			{
				directorates.GET("", h.Org.ListDirectorates)
				directorates.POST("", privileged, h.Org.CreateDirectorate)
				directorates.PUT("/:id", privileged, h.Org.UpdateDirectorate)
				directorates.DELETE("/:id", privileged, h.Org.DeleteDirectorate)
			}
			orgUnits := authorized.Group("/org-units")
			{
				orgUnits.GET("", h.Org.ListOrgUnits)
				orgUnits.GET("/:id", h.Org.GetOrgUnit)
				orgUnits.POST("", privileged, h.Org.CreateOrgUnit)
				orgUnits.PUT("/:id", privileged, h.Org.UpdateOrgUnit)
				orgUnits.DELETE("/:id", privileged, h.Org.DeleteOrgUnit)
			}

			// quota hierarchy: ceilings → distributions → events →
			// operations → schedule entries
			ceilings := authorized.Group("/ceilings")
			{
				ceilings.GET("", h.Ceiling.List)
				ceilings.GET("/:id", h.Ceiling.Get)
				ceilings.POST("", privileged, h.Ceiling.Create)
				ceilings.PUT("/:id", privileged, h.Ceiling.Update)
				ceilings.PATCH("/:id/submission-status", privileged, h.Ceiling.SetSubmissionStatus)
				ceilings.PATCH("/:id/payment-status", privileged, h.Ceiling.SetPaymentStatus)
				ceilings.DELETE("/:id", privileged, h.Ceiling.Delete)
			}

			distributions := authorized.Group("/distributions")
			{
				distributions.GET("", h.Distribution.List)
				distributions.GET("/:id", h.Distribution.Get)
				distributions.POST("", h.Distribution.Create)
				distributions.PUT("/:id", h.Distribution.Update)
				distributions.DELETE("/:id", h.Distribution.Delete)
			}

			events := authorized.Group("/events")
			{
				events.GET("", h.Event.List)
				events.GET("/:id", h.Event.Get)
				events.GET("/:id/operations", h.Operation.ListByEvent)
				events.POST("", h.Event.Create)
				events.POST("/homologate-month", h.Event.HomologateMonth)
				events.PUT("/:id", h.Event.Update)
				events.PATCH("/:id/status", h.Event.SetStatus)
				events.DELETE("/:id", h.Event.Delete)
			}

			operations := authorized.Group("/operations")
			{
				operations.GET("/:id", h.Operation.Get)
				operations.GET("/code/:code", h.Operation.GetByCode)
				operations.GET("/:id/schedule-entries", h.ScheduleEntry.ListByOperation)
				operations.POST("", h.Operation.Create)
				operations.PUT("/:id", h.Operation.Update)
				operations.PATCH("/:id/status", h.Operation.SetStatus)
				operations.DELETE("/:id", h.Operation.Delete)
			}

			entries := authorized.Group("/schedule-entries")
			{
				entries.GET("/personal", h.ScheduleEntry.ListPersonal)
				entries.GET("/personal/quota", h.ScheduleEntry.PersonalQuota)
				entries.GET("/:id", h.ScheduleEntry.Get)
				entries.GET("/:id/comments", h.ScheduleEntry.ListComments)
				entries.POST("", h.ScheduleEntry.Create)
				entries.POST("/:id/comments", h.ScheduleEntry.AddComment)
				entries.PUT("/:id", h.ScheduleEntry.Update)
				entries.PUT("/:id/obs", h.ScheduleEntry.SetObs)
				entries.PATCH("/:id/status", h.ScheduleEntry.SetStatus)
				entries.DELETE("/:id", h.ScheduleEntry.Delete)
				entries.DELETE("/:id/comments/:comment_id", h.ScheduleEntry.DeleteComment)
			}

			// read side
			authorized.GET("/summaries", h.Summary.Get)

			export := authorized.Group("/export")
			{
				export.GET("/roster/:code/xlsx", h.Export.RosterXLSX)
				export.GET("/roster/:code/ics", h.Export.RosterICS)
			}
		}
	}

	return r
}
