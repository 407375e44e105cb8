package routes

import (
	"gamify/controllers/achievement"
	"gamify/controllers/player"
	"gamify/controllers/transaction"
	"gamify/middlewares"
	"gamify/services"

	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App, eng *services.Engine, st services.Stores) {
	achievements := app.Group("/achievements")
	achievements.Get("/", achievement.ListAchievements)
	achievements.Post("/", achievement.CreateAchievement)
	achievements.Get("/:achievementId", achievement.GetAchievement)
	achievements.Put("/:achievementId", achievement.UpdateAchievement)
	achievements.Delete("/:achievementId", achievement.DeleteAchievement)

	players := app.Group("/players/:playerId", middlewares.PlayerResolver)
	players.Post("/actions", player.SimulateAction(eng))
	players.Get("/achievements", player.ListProgress(st))
	players.Post("/achievements/:achievementId/claim", player.ClaimReward(eng))
	players.Get("/wallet", player.GetWallet(st))

	app.Get("/transactions", transaction.ListTransactions(st))
}
