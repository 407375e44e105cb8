package player

import (
	"log"

	"gamify/helpers"
	"gamify/models"
	"gamify/services"

	"github.com/gofiber/fiber/v2"
)

func temporaryError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"success": false,
		"message": "TEMPORARY_ERROR",
		"data":    nil,
	})
}

// SimulateAction ingests one action event for the resolved player and
// runs the full achievement evaluation pass.
func SimulateAction(eng *services.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := c.Locals("player").(models.Player)

		var ev models.ActionEvent
		if err := c.BodyParser(&ev); err != nil {
			return helpers.JSONError(c, "INVALID_JSON")
		}
		if ev.Type == "" {
			return helpers.JSONError(c, "TRIGGER_TYPE_REQUIRED")
		}

		if err := eng.SimulateAction(p.ID, &ev); err != nil {
			log.Printf("[PLAYER] id=%s action=%s evaluation error: %v", p.ID, ev.Type, err)
			return temporaryError(c)
		}
		return helpers.JSONSuccess(c, "ACTION_PROCESSED", nil)
	}
}

// ClaimReward attempts the one-time payout for a completed achievement.
// A false outcome is a normal response, not a fault.
func ClaimReward(eng *services.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := c.Locals("player").(models.Player)
		achievementID := c.Params("achievementId")

		claimed, err := eng.ClaimReward(p.ID, achievementID)
		if err != nil {
			log.Printf("[PLAYER] id=%s achievement=%s claim error: %v", p.ID, achievementID, err)
			return temporaryError(c)
		}
		if !claimed {
			return helpers.JSONError(c, "CLAIM_NOT_AVAILABLE")
		}
		return helpers.JSONSuccess(c, "REWARD_CLAIMED", fiber.Map{"claimed": true})
	}
}

// ListProgress returns every progress record of the player.
func ListProgress(st services.Stores) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := c.Locals("player").(models.Player)

		records, err := st.Progress.ListByPlayer(p.ID)
		if err != nil {
			return temporaryError(c)
		}
		return helpers.JSONSuccess(c, "PLAYER_ACHIEVEMENTS", records)
	}
}

// GetWallet returns the player's wallet, creating it on first access.
func GetWallet(st services.Stores) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := c.Locals("player").(models.Player)

		wallet, err := st.Wallets.Get(p.ID)
		if err != nil {
			return temporaryError(c)
		}
		return helpers.JSONSuccess(c, "PLAYER_WALLET", wallet)
	}
}
