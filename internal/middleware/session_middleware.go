package middleware

import (
	"github.com/gofiber/fiber/v2"

	"vethome/internal/controller"
)

// SessionRequired rejects requests while no client is logged in and stores
// the client id in the Fiber context.
func SessionRequired(ctrl *controller.Controller) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := ctrl.Session().Get()
		if session.Status != controller.SessionAuthenticated {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Login required",
				"session": session,
			})
		}

		c.Locals("client_id", session.ClientID)
		return c.Next()
	}
}
