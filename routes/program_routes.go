package routes

import (
	"github.com/gofiber/fiber/v2"

	"tourmarket/handlers"
	"tourmarket/middleware"
)

func ProgramRoutes(app *fiber.App, programs *handlers.ProgramHandler, tariffs *handlers.TariffHandler) {
	api := app.Group("/api/v1")

	public := api.Group("/programs")
	public.Get("", programs.ListPrograms)
	public.Get("/:id", programs.GetProgram)
	public.Get("/:id/auctions", programs.GetProgramAuctions)
	public.Get("/:id/tariffs", tariffs.GetProgramTariffs)

	guide := api.Group("/programs", middleware.Protected(), middleware.GuideRequired())
	guide.Post("", programs.CreateProgram)
	guide.Post("/:id/tariffs", tariffs.CreateProgramTariff)
	guide.Put("/tariffs/:tariffId", tariffs.UpdateProgramTariff)
	guide.Delete("/tariffs/:tariffId", tariffs.DeleteProgramTariff)
}
