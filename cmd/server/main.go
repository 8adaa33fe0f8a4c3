package main

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/syncapp/sync-backend/internal/config"
	"github.com/syncapp/sync-backend/internal/database"
	"github.com/syncapp/sync-backend/internal/handlers"
	"github.com/syncapp/sync-backend/internal/jobs"
	"github.com/syncapp/sync-backend/internal/notify"
	"github.com/syncapp/sync-backend/internal/repository"
	"github.com/syncapp/sync-backend/internal/scheduler"
	"github.com/syncapp/sync-backend/internal/services"
	"github.com/syncapp/sync-backend/pkg/calendar"
	"github.com/syncapp/sync-backend/pkg/logger"
	"github.com/syncapp/sync-backend/pkg/middleware"
	"github.com/syncapp/sync-backend/pkg/push"
)

// noopNotifier stands in for APNs when no signing key is configured, so a
// dev environment runs without push delivery.
type noopNotifier struct{}

func (noopNotifier) Push(deviceToken, title, body string, data map[string]interface{}) error {
	logger.Log.WithField("title", title).Debug("Push delivery skipped (no APNs key configured)")
	return nil
}

func (noopNotifier) ScheduleAfter(seconds int64, deviceToken, title, body string, data map[string]interface{}) error {
	return nil
}

func main() {
	logger.InitLogger()

	cfg := config.LoadConfig()
	if cfg.JWTSecret == "" {
		logger.Log.Fatal("JWT_SECRET must be set")
	}

	db, err := database.ConnectDB(cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to connect to database")
	}
	logger.Log.Info("Connected to MongoDB")

	var notifier notify.Notifier
	if cfg.APNSKeyPath != "" {
		client, err := push.NewClient(cfg.APNSKeyPath, cfg.APNSKeyID, cfg.APNSTeamID, cfg.APNSTopic, cfg.APNSProduction)
		if err != nil {
			logger.Log.WithError(err).Fatal("Failed to initialize APNs client")
		}
		notifier = client
	} else {
		logger.Log.Warn("APNS_KEY_PATH not set, push notifications disabled")
		notifier = noopNotifier{}
	}

	calendarProvider := calendar.NewRESTProvider(cfg.CalendarAPIURL)

	mediaService, err := services.NewMediaService(context.Background(), cfg.AWSRegion, cfg.S3Bucket)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to initialize media service")
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	inviteRepo := repository.NewInviteRepository(db)
	nightRepo := repository.NewDateNightRepository(db)
	reviewRepo := repository.NewDateReviewRepository(db)
	gameRepo := repository.NewGameRepository(db)
	ticTacToeRepo := repository.NewTicTacToeRepository(db)
	manifestationRepo := repository.NewManifestationRepository(db)
	gentleDaysRepo := repository.NewGentleDaysRepository(db)
	moodRepo := repository.NewMoodRepository(db)
	echoRepo := repository.NewDailyEchoRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Services
	hub := services.NewStreamHub()
	reminders := notify.NewScheduler(notifier)
	userService := services.NewUserService(userRepo, cfg.JWTSecret, cfg.TokenExpiry)
	inviteService := services.NewInviteService(inviteRepo, userRepo, notifier, hub)
	nightService := services.NewDateNightService(nightRepo, userRepo, reminders, calendarProvider, hub)
	reviewService := services.NewDateReviewService(reviewRepo, nightRepo, userRepo, notifier, hub)
	gameService := services.NewGameService(gameRepo, userRepo, notifier, hub)
	ticTacToeService := services.NewTicTacToeService(ticTacToeRepo, userRepo, hub)
	manifestationService := services.NewManifestationService(manifestationRepo, userRepo, hub)
	gentleDaysService := services.NewGentleDaysService(gentleDaysRepo, userRepo, notifier, hub)
	moodService := services.NewMoodService(moodRepo, userRepo, notifier, hub)
	echoService := services.NewDailyEchoService(echoRepo, userRepo, hub)
	notificationService := services.NewNotificationService(notificationRepo, userRepo, notifier)

	// Handlers
	userHandler := handlers.NewUserHandler(userService)
	inviteHandler := handlers.NewInviteHandler(inviteService)
	nightHandler := handlers.NewDateNightHandler(nightService)
	reviewHandler := handlers.NewDateReviewHandler(reviewService, mediaService)
	gameHandler := handlers.NewGameHandler(gameService, ticTacToeService)
	manifestationHandler := handlers.NewManifestationHandler(manifestationService)
	gentleDaysHandler := handlers.NewGentleDaysHandler(gentleDaysService)
	moodHandler := handlers.NewMoodHandler(moodService)
	echoHandler := handlers.NewDailyEchoHandler(echoService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	streamHandler := handlers.NewStreamHandler(hub)

	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware)

	// Public routes
	router.HandleFunc("/auth/register", userHandler.RegisterHandler).Methods("POST")
	router.HandleFunc("/auth/login", userHandler.LoginHandler).Methods("POST")
	router.HandleFunc("/auth/verify", userHandler.VerifyEmailHandler).Methods("GET")
	router.HandleFunc("/auth/password/forgot", userHandler.RequestPasswordResetHandler).Methods("POST")
	router.HandleFunc("/auth/password/reset", userHandler.ResetPasswordHandler).Methods("POST")

	// Authenticated routes
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.AuthMiddleware(cfg.JWTSecret))

	api.HandleFunc("/me", userHandler.GetProfileHandler).Methods("GET")
	api.HandleFunc("/me", userHandler.UpdateProfileHandler).Methods("PATCH")
	api.HandleFunc("/me/push-token", userHandler.UpdatePushTokenHandler).Methods("PUT")
	api.HandleFunc("/me/calendar-token", userHandler.UpdateCalendarTokenHandler).Methods("PUT")

	api.HandleFunc("/invites", inviteHandler.CreateInviteHandler).Methods("POST")
	api.HandleFunc("/invites/redeem", inviteHandler.RedeemInviteHandler).Methods("POST")

	api.HandleFunc("/datenights", nightHandler.CreateDateNightHandler).Methods("POST")
	api.HandleFunc("/datenights", nightHandler.GetDateNightsHandler).Methods("GET")
	api.HandleFunc("/datenights/calendar/sync", nightHandler.SyncCalendarHandler).Methods("POST")
	api.HandleFunc("/datenights/{id}", nightHandler.GetDateNightHandler).Methods("GET")
	api.HandleFunc("/datenights/{id}", nightHandler.UpdateDateNightHandler).Methods("PATCH")
	api.HandleFunc("/datenights/{id}", nightHandler.DeleteDateNightHandler).Methods("DELETE")
	api.HandleFunc("/datenights/{id}/complete", nightHandler.CompleteDateNightHandler).Methods("POST")
	api.HandleFunc("/datenights/{id}/reviews", reviewHandler.SubmitReviewHandler).Methods("POST")
	api.HandleFunc("/datenights/{id}/reviews", reviewHandler.GetReviewsHandler).Methods("GET")
	api.HandleFunc("/reviews/media", reviewHandler.UploadMediaHandler).Methods("POST")

	api.HandleFunc("/games", gameHandler.StartGameHandler).Methods("POST")
	api.HandleFunc("/games/active", gameHandler.GetActiveSessionsHandler).Methods("GET")
	api.HandleFunc("/games/completed", gameHandler.GetRecentCompletedHandler).Methods("GET")
	api.HandleFunc("/games/{id}/answer", gameHandler.SubmitAnswerHandler).Methods("POST")
	api.HandleFunc("/games/{id}", gameHandler.AbandonSessionHandler).Methods("DELETE")
	api.HandleFunc("/tictactoe", gameHandler.StartTicTacToeHandler).Methods("POST")
	api.HandleFunc("/tictactoe", gameHandler.GetTicTacToeHandler).Methods("GET")
	api.HandleFunc("/tictactoe/move", gameHandler.TicTacToeMoveHandler).Methods("POST")
	api.HandleFunc("/tictactoe", gameHandler.ResetTicTacToeHandler).Methods("DELETE")

	api.HandleFunc("/manifestations", manifestationHandler.CreateManifestationHandler).Methods("POST")
	api.HandleFunc("/manifestations", manifestationHandler.GetManifestationsHandler).Methods("GET")
	api.HandleFunc("/manifestations/{id}", manifestationHandler.UpdateManifestationHandler).Methods("PATCH")
	api.HandleFunc("/manifestations/{id}", manifestationHandler.DeleteManifestationHandler).Methods("DELETE")
	api.HandleFunc("/manifestations/{id}/progress", manifestationHandler.SetProgressHandler).Methods("PUT")
	api.HandleFunc("/manifestations/{id}/milestones/toggle", manifestationHandler.ToggleMilestoneHandler).Methods("POST")

	api.HandleFunc("/gentledays/chips", gentleDaysHandler.GetChipsHandler).Methods("GET")
	api.HandleFunc("/gentledays/today", gentleDaysHandler.GetTodayHandler).Methods("GET")
	api.HandleFunc("/gentledays/today", gentleDaysHandler.SetTodayStatusHandler).Methods("PUT")
	api.HandleFunc("/gentledays/settings", gentleDaysHandler.GetSettingsHandler).Methods("GET")
	api.HandleFunc("/gentledays/settings", gentleDaysHandler.UpdateSettingsHandler).Methods("PUT")

	api.HandleFunc("/moods", moodHandler.LogMoodHandler).Methods("POST")
	api.HandleFunc("/moods", moodHandler.GetRecentMoodsHandler).Methods("GET")

	api.HandleFunc("/echo/today", echoHandler.GetTodayHandler).Methods("GET")
	api.HandleFunc("/echo/answer", echoHandler.SubmitAnswerHandler).Methods("POST")

	api.HandleFunc("/notifications", notificationHandler.GetNotificationsHandler).Methods("GET")
	api.HandleFunc("/notifications/{id}/read", notificationHandler.MarkAsReadHandler).Methods("POST")
	api.HandleFunc("/notifications/{id}", notificationHandler.DeleteNotificationHandler).Methods("DELETE")

	api.HandleFunc("/ws", streamHandler.ServeStreamHandler).Methods("GET")

	// Background sweeps
	planner := jobs.NewReviewReminderPlanner(reviewService, notifier)
	cronScheduler := scheduler.New(userRepo, nightRepo, planner, nightService, notificationService)
	cronScheduler.Start()
	defer cronScheduler.Stop()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}).Handler(router)

	logger.Log.WithField("port", cfg.Port).Info("Server starting")
	if err := http.ListenAndServe(":"+cfg.Port, corsHandler); err != nil {
		logger.Log.WithError(err).Fatal("Server stopped")
	}
}
