package middlewares

import (
	"log"
	"strings"

	"gamify/database"
	"gamify/helpers"
	"gamify/models"

	"github.com/gofiber/fiber/v2"
)

// PlayerResolver loads the player row for the :playerId path param and
// stores it in Locals. Unknown players are registered on first use,
// mirroring how the verticals report actions for any account.
func PlayerResolver(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("playerId"))
	if id == "" {
		return helpers.JSONError(c, "PLAYER_ID_REQUIRED")
	}

	var player models.Player
	if err := database.DB.Where(models.Player{ID: id}).FirstOrCreate(&player).Error; err != nil {
		log.Printf("[PLAYER] id=%s failed to resolve player: %v", id, err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"success": false,
			"message": "TEMPORARY_ERROR",
			"data":    nil,
		})
	}

	c.Locals("player", player)
	return c.Next()
}
