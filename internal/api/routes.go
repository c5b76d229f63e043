package api

import (
	"github.com/gin-gonic/gin"
	"github.com/yourusername/lokanta-backend/internal/activity"
	"github.com/yourusername/lokanta-backend/internal/api/handlers"
	"github.com/yourusername/lokanta-backend/internal/api/middleware"
	"github.com/yourusername/lokanta-backend/internal/backup"
	"github.com/yourusername/lokanta-backend/internal/capacity"
	"github.com/yourusername/lokanta-backend/internal/config"
	"github.com/yourusername/lokanta-backend/internal/contact"
	"github.com/yourusername/lokanta-backend/internal/content"
	"github.com/yourusername/lokanta-backend/internal/docstore"
	"github.com/yourusername/lokanta-backend/internal/mailer"
	"github.com/yourusername/lokanta-backend/internal/push"
	"github.com/yourusername/lokanta-backend/internal/reservation"
	"github.com/yourusername/lokanta-backend/internal/reset"
	"github.com/yourusername/lokanta-backend/internal/settings"
	"github.com/yourusername/lokanta-backend/internal/websocket"
)

// SetupRouter configures and returns the HTTP router
func SetupRouter(
	cfg *config.Config,
	store *docstore.Store,
	sender mailer.Sender,
	engine *backup.Engine,
	scheduler *backup.Scheduler,
	hub *websocket.Hub,
	audit *activity.Logger,
) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.Security.CORS))
	router.Use(middleware.RateLimit(cfg.Security.RateLimit.Enabled, cfg.Security.RateLimit.RequestsPerMinute))
	router.Use(middleware.SecurityHeaders())

	// Domain managers
	evaluator := capacity.NewEvaluator(store)
	reservations := reservation.NewManager(store, evaluator, sender)
	messages := contact.NewManager(store, sender)
	contentMgr := content.NewManager(store)
	settingsMgr := settings.NewManager(store)
	broadcaster := push.NewBroadcaster(store)
	resetSvc := reset.NewService(store)

	// Handlers
	reservationHandler := handlers.NewReservationHandler(reservations, hub, audit)
	capacityHandler := handlers.NewCapacityHandler(evaluator)
	messageHandler := handlers.NewMessageHandler(messages, hub, audit)
	menuHandler := handlers.NewMenuHandler(contentMgr, audit)
	galleryHandler := handlers.NewGalleryHandler(contentMgr, audit)
	contentHandler := handlers.NewContentHandler(contentMgr, audit)
	settingsHandler := handlers.NewSettingsHandler(settingsMgr, sender, audit)
	backupHandler := handlers.NewBackupHandler(engine, scheduler, hub, audit)
	resetHandler := handlers.NewResetHandler(resetSvc, hub, audit)
	pushHandler := handlers.NewPushHandler(broadcaster, audit)
	notifyHandler := handlers.NewNotifyHandler(sender, audit)
	activityHandler := handlers.NewActivityHandler(audit)
	wsHandler := handlers.NewWebSocketHandler(hub, cfg.Security.CORS.AllowedOrigins)

	apiGroup := router.Group("/api")
	{
		// Reservations
		apiGroup.GET("/reservations", reservationHandler.ListReservations)
		apiGroup.POST("/reservations", reservationHandler.CreateReservation)
		apiGroup.PATCH("/reservations", reservationHandler.UpdateReservationStatus)
		apiGroup.DELETE("/reservations", reservationHandler.DeleteReservation)

		// Capacity
		apiGroup.POST("/capacity/check", capacityHandler.CheckCapacity)

		// Contact messages
		apiGroup.GET("/messages", messageHandler.ListMessages)
		apiGroup.POST("/messages", messageHandler.CreateMessage)
		apiGroup.PATCH("/messages", messageHandler.MarkMessageRead)
		apiGroup.DELETE("/messages", messageHandler.DeleteMessage)
		apiGroup.POST("/messages/reply", messageHandler.ReplyMessage)

		// Menu
		apiGroup.GET("/menu", menuHandler.GetMenu)
		apiGroup.POST("/menu/categories", menuHandler.CreateCategory)
		apiGroup.PUT("/menu/categories/:id", menuHandler.UpdateCategory)
		apiGroup.DELETE("/menu/categories/:id", menuHandler.DeleteCategory)
		apiGroup.POST("/menu/categories/:id/items", menuHandler.CreateItem)
		apiGroup.PUT("/menu/items/:id", menuHandler.UpdateItem)
		apiGroup.DELETE("/menu/items/:id", menuHandler.DeleteItem)

		// Gallery
		apiGroup.GET("/gallery", galleryHandler.ListImages)
		apiGroup.POST("/gallery", galleryHandler.CreateImage)
		apiGroup.PUT("/gallery/:id", galleryHandler.UpdateImage)
		apiGroup.DELETE("/gallery/:id", galleryHandler.DeleteImage)

		// Page content
		apiGroup.GET("/content/about", contentHandler.GetAbout)
		apiGroup.PUT("/content/about", contentHandler.SaveAbout)
		apiGroup.GET("/policies", contentHandler.GetPolicies)
		apiGroup.PUT("/policies", contentHandler.SavePolicies)

		// Settings
		apiGroup.GET("/settings/capacity", settingsHandler.GetCapacitySettings)
		apiGroup.PUT("/settings/capacity", settingsHandler.SaveCapacitySettings)
		apiGroup.GET("/settings/seo", settingsHandler.GetSEOSettings)
		apiGroup.PUT("/settings/seo", settingsHandler.SaveSEOSettings)
		apiGroup.GET("/settings/smtp", settingsHandler.GetSMTPSettings)
		apiGroup.PUT("/settings/smtp", settingsHandler.SaveSMTPSettings)
		apiGroup.POST("/settings/smtp/test", settingsHandler.TestSMTP)

		// Backup
		apiGroup.GET("/backup", backupHandler.ExportBackup)
		apiGroup.POST("/backup", backupHandler.RestoreBackup)
		apiGroup.POST("/backup/auto", backupHandler.AutoBackup)
		apiGroup.GET("/backup/logs", backupHandler.ListBackupLogs)

		// System reset
		apiGroup.GET("/reset/challenge", resetHandler.GetChallenge)
		apiGroup.POST("/reset", resetHandler.ConfirmReset)

		// Push notifications
		apiGroup.GET("/push/subscriptions", pushHandler.ListSubscriptions)
		apiGroup.POST("/push/subscriptions", pushHandler.CreateSubscription)
		apiGroup.DELETE("/push/subscriptions", pushHandler.DeleteSubscription)
		apiGroup.POST("/push/send", pushHandler.SendPush)
		apiGroup.POST("/notify/email", notifyHandler.SendEmail)

		// Admin audit trail
		apiGroup.GET("/activity", activityHandler.ListActivity)

		// Admin event stream
		apiGroup.GET("/ws/admin", wsHandler.Connect)
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return router
}
