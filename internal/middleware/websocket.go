package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebSocketUpgrade ensures that requests to WebSocket endpoints are valid WebSocket connection attempts.
// It also checks that the session and player are known before allowing the upgrade.
//
// origins restricts browser handshakes: a request carrying an Origin header
// must match one of them. Requests without the header come from non-browser
// clients and are allowed. An empty list allows every origin.
func WebSocketUpgrade(origins []string) fiber.Handler {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}

	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		if origin := c.Get(fiber.HeaderOrigin); origin != "" && len(allowed) > 0 && !allowed[origin] {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "origin not allowed",
			})
		}

		if c.Params("sessionId") == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "session ID is required",
			})
		}

		// Set by EnsurePlayerID; carried across the upgrade through locals.
		if PlayerID(c) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "player ID is required",
			})
		}

		return c.Next()
	}
}
