package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"consultbook/internal/handler/api"
	"consultbook/internal/handler/middleware"
	"consultbook/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	sessionHandler *api.SessionHandler,
	bookingHandler *api.BookingHandler,
	scheduleHandler *api.ScheduleHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, sessionHandler, bookingHandler, scheduleHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	sessionHandler *api.SessionHandler,
	bookingHandler *api.BookingHandler,
	scheduleHandler *api.ScheduleHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		sessions := apiGroup.Group("/sessions")
		{
			addRoutes(sessions, []route{
				{Method: http.MethodPost, Path: "", Handler: sessionHandler.Start},
				{Method: http.MethodPost, Path: "/:id/date", Handler: sessionHandler.ChooseDate},
				{Method: http.MethodPost, Path: "/:id/slot", Handler: sessionHandler.ChooseSlot},
				{Method: http.MethodPost, Path: "/:id/confirm", Handler: sessionHandler.Confirm},
				{Method: http.MethodPost, Path: "/:id/back", Handler: sessionHandler.Back},
				{Method: http.MethodDelete, Path: "/:id", Handler: sessionHandler.Cancel},
			})
		}

		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/availability/:date", Handler: bookingHandler.AvailableSlots},
		})

		admin := apiGroup.Group("")
		admin.Use(authMiddleware.RequireAdmin())
		{
			addRoutes(admin, []route{
				{Method: http.MethodGet, Path: "/schedule", Handler: scheduleHandler.Get},
				{Method: http.MethodPut, Path: "/schedule", Handler: scheduleHandler.Replace},
				{Method: http.MethodGet, Path: "/bookings", Handler: bookingHandler.ListByDate},
				{Method: http.MethodGet, Path: "/bookings/:id", Handler: bookingHandler.Get},
				{Method: http.MethodDelete, Path: "/bookings/:id", Handler: bookingHandler.Cancel},
			})
		}
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

func addRoutes(group *gin.RouterGroup, routes []route) {
	for _, r := range routes {
		handlers := append([]gin.HandlerFunc{}, r.Mw...)
		handlers = append(handlers, r.Handler)
		group.Handle(r.Method, r.Path, handlers...)
	}
}
