package routes

import (
	"checkin/config"
	"checkin/controllers"
	"checkin/middleware"
	"checkin/services"
	"checkin/services/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes mounts the public check-in API and the operational endpoints
func SetupRoutes(router *gin.Engine, app *config.App, cfg *config.Config, gatherer prometheus.Gatherer, log logger.Logger) {
	router.Use(middleware.RequestID(log), middleware.Metrics(app.Metrics))

	RegisterCheckinRoutes(router, app.Service, log)

	health := controllers.NewHealthController(app.Store, cfg.StoreTimeout)
	router.GET("/ping", health.Ping)
	router.GET("/healthz", health.Healthz)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	config.InitWebSocket(router, app.Melody, log)
}

// RegisterCheckinRoutes mounts the four check-in routes
func RegisterCheckinRoutes(router gin.IRoutes, svc *services.CheckinService, log logger.Logger) {
	checkinController := controllers.NewCheckinController(svc, log)

	router.POST("/upload", checkinController.Upload)
	router.POST("/checkin", checkinController.CreateCheckin)
	router.GET("/checkins", checkinController.GetCheckins)
	router.DELETE("/checkin/:id", checkinController.DeleteCheckin)
}
