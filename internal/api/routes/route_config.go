package routes

import (
	"FeastForBeasts/internal/api/handlers"
	"FeastForBeasts/internal/middleware"
	"FeastForBeasts/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App               *fiber.App
	DonationHandler   handlers.DonationHandler
	AllocationHandler handlers.AllocationHandler
	RewardHandler     handlers.RewardHandler
	ProfileHandler    handlers.ProfileHandler
	Middleware        middleware.Middleware
	JWTService        jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.Donations()
	c.Rewards()
	c.Profile()
	c.AuthRoute()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

func (c *Config) AuthRoute() {
	c.App.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": c.Locals("user_id"),
			"role":    c.Locals("role"),
		})
	})
}

func (c *Config) Donations() {
	donations := c.App.Group("/api/v1/donations", c.Middleware.AuthMiddleware(c.JWTService))
	donations.Get("/statistics", c.DonationHandler.GetDonationStatistics)

	donations.Post("", c.DonationHandler.CreateDonation)
	donations.Get("", c.DonationHandler.GetUserDonations)
	donations.Get("/:id", c.DonationHandler.GetDonationByID)
	donations.Patch("/:id/status", c.DonationHandler.UpdateDonationStatus)
	donations.Patch("/:id/volunteer", c.DonationHandler.AssignVolunteer)
	donations.Post("/:id/photo", c.DonationHandler.UploadDonationPhoto)

	// allocation
	donations.Post("/:id/candidates", c.AllocationHandler.RequestCandidates)
	donations.Post("/:id/assignment", c.AllocationHandler.CommitAssignment)
}

func (c *Config) Rewards() {
	rewards := c.App.Group("/api/v1/rewards", c.Middleware.AuthMiddleware(c.JWTService))
	rewards.Get("/catalog", c.RewardHandler.GetRewards)
	rewards.Get("/points", c.RewardHandler.GetPointsSummary)
	rewards.Get("/history", c.RewardHandler.GetLedgerHistory)
	rewards.Post("/redeem", c.RewardHandler.RedeemReward)
}

func (c *Config) Profile() {
	profile := c.App.Group("/api/v1/profile", c.Middleware.AuthMiddleware(c.JWTService))
	profile.Get("", c.ProfileHandler.GetProfile)
	profile.Patch("", c.ProfileHandler.UpdateProfile)
}
