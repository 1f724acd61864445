package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"clinic-appointments/internal/handler/api"
	"clinic-appointments/internal/handler/middleware"
	"clinic-appointments/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

func NewRouter(engine *gin.Engine, cfg config.Config, appointmentHandler *api.AppointmentHandler) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, appointmentHandler)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, appointmentHandler *api.AppointmentHandler) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	appointments := engine.Group("/appointments")
	{
		addRoutes(appointments, []route{
			{Method: http.MethodGet, Path: "", Handler: appointmentHandler.List},
			{Method: http.MethodPost, Path: "", Handler: appointmentHandler.Create},
			{Method: http.MethodGet, Path: "/:id", Handler: appointmentHandler.Get},
			{Method: http.MethodPatch, Path: "/:id", Handler: appointmentHandler.Update},
			{Method: http.MethodPatch, Path: "/:id/cancel", Handler: appointmentHandler.Cancel},
			{Method: http.MethodPatch, Path: "/:id/complete", Handler: appointmentHandler.Complete},
			{Method: http.MethodDelete, Path: "/:id", Handler: appointmentHandler.Delete},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, r.Handler)
		case http.MethodPost:
			g.POST(r.Path, r.Handler)
		case http.MethodPatch:
			g.PATCH(r.Path, r.Handler)
		case http.MethodDelete:
			g.DELETE(r.Path, r.Handler)
		default:
			g.Any(r.Path, r.Handler)
		}
	}
}
