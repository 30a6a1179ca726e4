// File: carepro/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carepro/config"
	"carepro/cron"
	"carepro/database"
	profileRepo "carepro/database/repository/profile"
	"carepro/handlers"
	"carepro/middleware"
	"carepro/routes"
	"carepro/services/navigation"
	"carepro/services/payment"
	"carepro/services/profile"
	"carepro/services/session"
	"carepro/services/tasks"
	"carepro/services/upstream"
	"carepro/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSessionCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// Upstream API client.
	upstreamClient := upstream.NewHTTPClient(
		config.AppConfig.UpstreamBaseURL,
		time.Duration(config.AppConfig.UpstreamTimeout)*time.Second,
		logger,
	)

	// Session store and navigation flows.
	sessionStore := session.NewRedisStore(
		utils.GetSessionClient(),
		time.Duration(config.AppConfig.SessionTTLHours)*time.Hour,
	)
	revoker := tasks.NewAsynqRevoker()
	defer revoker.Close()
	registry := navigation.NewRegistry(sessionStore, revoker, logger)

	rootCtx, stopPruning := context.WithCancel(context.Background())
	defer stopPruning()
	registry.StartPruning(rootCtx, time.Hour, 24*time.Hour)

	// Background worker relaying token revocations upstream.
	cron.InitRevokeWorker(upstreamClient)

	// Services.
	profileService := &profile.DefaultProfileService{
		Repo:     profileRepo.NewMongoProfileRepo(),
		Upstream: upstreamClient,
		MaxAge:   time.Hour,
		Logger:   logger,
	}
	paymentService := &payment.StripePaymentService{Logger: logger}

	// Handlers.
	navigationHandler := handlers.NewNavigationHandler(registry)
	accountHandler := handlers.NewAccountHandler(registry, upstreamClient)
	profileHandler := handlers.NewProfileHandler(registry, profileService)
	categoryHandler := handlers.NewCategoryHandler(upstreamClient)
	paymentHandler := handlers.NewPaymentRedirectHandler(paymentService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		SessionStore: sessionStore,

		StartFlowHandler: navigationHandler.StartFlowHandler,
		BootstrapHandler: navigationHandler.BootstrapHandler,
		NavigateHandler:  navigationHandler.NavigateHandler,

		LoginHandler:     accountHandler.LoginHandler,
		RegisterHandler:  accountHandler.RegisterHandler,
		VerifyOTPHandler: accountHandler.VerifyOTPHandler,
		LogoutHandler:    accountHandler.LogoutHandler,

		GetProfileHandler: profileHandler.GetProfileHandler,

		ActiveCategoriesHandler: categoryHandler.ActiveCategoriesHandler,

		PaymentSuccessHandler: paymentHandler.SuccessHandler,
		PaymentCancelHandler:  paymentHandler.CancelHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
