package transaction

import (
	"gamify/helpers"
	"gamify/services"

	"github.com/gofiber/fiber/v2"
)

// ListTransactions returns the completion audit trail, newest first.
func ListTransactions(st services.Stores) fiber.Handler {
	return func(c *fiber.Ctx) error {
		txs, err := st.Transactions.List()
		if err != nil {
			return helpers.JSONError(c, "FAILED_TO_FETCH_TRANSACTIONS")
		}
		return helpers.JSONSuccess(c, "TRANSACTIONS", txs)
	}
}
