package routes

import (
	"github.com/gofiber/fiber/v2"

	"tourmarket/handlers"
	"tourmarket/middleware"
)

func AuctionRoutes(app *fiber.App, h *handlers.AuctionHandler) {
	api := app.Group("/api/v1")

	auctions := api.Group("/auctions", middleware.Protected())
	auctions.Get("", h.ListActiveAuctions)
	auctions.Get("/me", h.GetMyAuctions)
	auctions.Get("/me/highest-bids", h.GetHighestBids)
	auctions.Post("", h.CreateAuction)
	auctions.Get("/:id", h.GetAuction)
	auctions.Put("/:id", h.UpdateAuction)
	auctions.Delete("/:id", h.DeleteAuction)
	auctions.Post("/:id/close", h.CloseAuction)
	auctions.Get("/:id/bids", h.GetAuctionBids)

	auctions.Get("/:id/feed", handlers.WebsocketUpgrade, handlers.AuctionFeed)

	bids := api.Group("/bids", middleware.Protected(), middleware.GuideRequired())
	bids.Get("/me", h.GetMyBids)
	bids.Get("/me/auctions", h.GetBiddedAuctions)
	bids.Post("/auctions/:id", h.PlaceBid)
	bids.Delete("/:bidId", h.CancelBid)
}
