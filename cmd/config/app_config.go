package config

import (
	"FeastForBeasts/entities"
	"FeastForBeasts/internal/api/handlers"
	"FeastForBeasts/internal/api/routes"
	"FeastForBeasts/internal/middleware"
	"FeastForBeasts/internal/utils"
	"FeastForBeasts/internal/utils/mailing"
	"FeastForBeasts/internal/utils/storage"
	"FeastForBeasts/pkg/allocation"
	"FeastForBeasts/pkg/donation"
	"FeastForBeasts/pkg/jwt"
	"FeastForBeasts/pkg/notification"
	"FeastForBeasts/pkg/profile"
	"FeastForBeasts/pkg/recommendation"
	"FeastForBeasts/pkg/reward"
	"context"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware(utils.GetConfig("CORS_ORIGINS"))
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Jakarta",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	donationRepository := donation.NewDonationRepository(db)
	rewardRepository := reward.NewRewardRepository(db)
	profileRepository := profile.NewProfileRepository(db)

	var seed []entities.Donation
	if utils.GetConfig("SEED_DONATIONS") == "true" {
		seed = donation.DefaultSeed()
	}
	donationStore, err := donation.NewDonationStore(context.Background(), donationRepository, seed)
	if err != nil {
		return nil, err
	}

	// Service
	jwtService := jwt.NewJWTService(utils.GetConfig("JWT_SECRET"))
	profileService := profile.NewProfileService(profileRepository, validator)
	notifier := newNotifier(profileService)
	rewardService := reward.NewRewardService(rewardRepository, donationStore, notifier)
	donationService := donation.NewDonationService(donationStore, rewardService, notifier, s3, validator)
	allocationService := allocation.NewAllocationService(donationStore, newRecommender(), notifier)

	if granted, err := donationService.ReconcileRewards(context.Background()); err != nil {
		log.Errorw("failed to reconcile rewards", "error", err)
	} else if granted > 0 {
		log.Infow("reconciled rewards for delivered donations", "granted", granted)
	}

	// Handler
	donationHandler := handlers.NewDonationHandler(donationService)
	allocationHandler := handlers.NewAllocationHandler(allocationService, validator)
	rewardHandler := handlers.NewRewardHandler(rewardService, validator)
	profileHandler := handlers.NewProfileHandler(profileService)

	// routes
	routesConfig := routes.Config{
		App:               app,
		DonationHandler:   donationHandler,
		AllocationHandler: allocationHandler,
		RewardHandler:     rewardHandler,
		ProfileHandler:    profileHandler,
		Middleware:        middlewares,
		JWTService:        jwtService,
	}
	routesConfig.Setup()
	return app, nil
}

func newNotifier(contacts notification.ContactLookup) notification.Notifier {
	mailConfig := mailing.LoadMailConfig()
	if !mailConfig.Configured() {
		log.Warn("smtp not configured, notifications disabled")
		return notification.NopNotifier{}
	}
	return notification.NewMailNotifier(contacts, mailing.NewMailer(mailConfig))
}

func newRecommender() allocation.Recommender {
	timeout, err := time.ParseDuration(utils.GetConfig("RECOMMENDER_TIMEOUT"))
	if err != nil {
		log.Warnw("invalid RECOMMENDER_TIMEOUT, using 20s", "error", err)
		timeout = 20 * time.Second
	}

	switch backend := utils.GetConfig("RECOMMENDER_BACKEND"); backend {
	case "ollama":
		client := recommendation.NewOllamaClient(utils.GetConfig("OLLAMA_URL"), utils.GetConfig("OLLAMA_MODEL"))
		client.HTTPClient.Timeout = timeout
		return client
	default:
		if backend != "http" {
			log.Warnw("unknown recommender backend, using http", "backend", backend)
		}
		return recommendation.NewHTTPClient(utils.GetConfig("RECOMMENDER_URL"), timeout)
	}
}
