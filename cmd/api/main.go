package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"tourmarket/database"
	"tourmarket/handlers"
	"tourmarket/jobs"
	"tourmarket/notifications"
	"tourmarket/repository"
	"tourmarket/routes"
	"tourmarket/services"
	"tourmarket/websocket"
)

func main() {
	database.ConnectDB()
	database.Migrate()
	database.SeedSuperAdmin()

	store := repository.NewGormStore(database.DB)
	notifier := notifications.InitTelegramService(store)

	guideService := services.NewGuideService(store, store, store, notifier)
	programService := services.NewProgramService(store)
	auctionService := services.NewAuctionService(store, store)
	bookingService := services.NewBookingService(store, store)
	tariffService := services.NewTariffService(store, store)
	tokenService := services.NewTokenService(store, store, notifier)
	reviewService := services.NewReviewService(store, store)
	voucherService := services.NewVoucherService(store)

	expiryCron := jobs.StartAuctionExpiryJob(store)
	defer expiryCron.Stop()

	app := fiber.New(fiber.Config{
		Prefork:           false,
		AppName:           "Tour Market",
		CaseSensitive:     true,
		StrictRouting:     true,
		EnablePrintRoutes: true,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Welcome to Tour Market API",
		})
	})

	authHandler := handlers.NewAuthHandler(store)
	profileHandler := handlers.NewProfileHandler(guideService)
	adminHandler := handlers.NewAdminHandler(guideService, programService)
	programHandler := handlers.NewProgramHandler(programService, auctionService)
	auctionHandler := handlers.NewAuctionHandler(auctionService)
	bookingHandler := handlers.NewBookingHandler(bookingService, voucherService)
	tariffHandler := handlers.NewTariffHandler(tariffService)
	tokenHandler := handlers.NewTokenHandler(tokenService)
	reviewHandler := handlers.NewReviewHandler(reviewService)

	routes.AuthRoutes(app, authHandler)
	routes.ProfileRoutes(app, profileHandler, reviewHandler)
	routes.ProgramRoutes(app, programHandler, tariffHandler)
	routes.AuctionRoutes(app, auctionHandler)
	routes.BookingRoutes(app, bookingHandler, reviewHandler)
	routes.TokenRoutes(app, tokenHandler)
	routes.AdminRoutes(app, adminHandler)
	routes.UploadRoutes(app)

	go websocket.RunHub()

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	log.Println("✅ Server is running on port 8080")
	if err := app.Listen(":8080"); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
