package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/tanush-em/QWERTY/internal/middleware"
	"github.com/tanush-em/QWERTY/internal/service"
	"github.com/tanush-em/QWERTY/pkg/config"
	"github.com/tanush-em/QWERTY/pkg/logger"
	corsmiddleware "github.com/tanush-em/QWERTY/pkg/middleware/cors"
	reqidmiddleware "github.com/tanush-em/QWERTY/pkg/middleware/requestid"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// RouterParams groups route registration dependencies.
type RouterParams struct {
	Config      *config.Config
	Logger      *zap.Logger
	Collections *CollectionHandler
	Dashboard   *DashboardHandler
	Timetable   *TimetableHandler
	Reports     *ReportHandler
	Metrics     *service.MetricsService
	Store       pinger
}

// NewRouter assembles the gin engine with middleware and every route.
func NewRouter(p RouterParams) *gin.Engine {
	if p.Config.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(p.Logger))
	r.Use(corsmiddleware.New(p.Config.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(p.Metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if p.Store != nil {
			if err := p.Store.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "store unreachable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(p.Metrics.Handler()))

	if p.Config.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(p.Config.APIPrefix)
	api.GET("/dashboard", p.Dashboard.Summary)
	api.GET("/collections", p.Collections.Collections)
	api.GET("/data/:collection", p.Collections.List)

	api.GET("/timetable/week", p.Timetable.Week)
	api.GET("/timetable/day/:day", p.Timetable.Day)
	api.GET("/timetable/faculty/:id", p.Timetable.FacultySchedule)
	api.GET("/timetable/rooms/availability", p.Timetable.RoomAvailability)
	api.GET("/timetable/free-periods", p.Timetable.FreePeriods)
	api.GET("/timetable/conflicts", p.Timetable.Conflicts)

	if p.Config.Reports.Enabled && p.Reports != nil {
		api.GET("/reports/:collection", p.Reports.Generate)
	}

	// Plain per-collection reads, kept last so the static routes above
	// win the match.
	api.GET("/:collection", p.Collections.List)
	api.GET("/:collection/:id", p.Collections.Get)

	return r
}
