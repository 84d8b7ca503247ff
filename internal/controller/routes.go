package controller

import (
	"github.com/benbeisheim/chessdev-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// Register mounts the REST and WebSocket routes on app. origins limits
// browser WebSocket handshakes (see middleware.WebSocketUpgrade); empty
// allows any origin.
func Register(app *fiber.App, sc *SessionController, wsc *WebSocketController, origins []string) {
	// Origins are checked by the upgrade middleware, which also admits
	// clients that send no Origin header.
	wsConfig := websocket.Config{
		Origins:         []string{"*"},
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}

	app.Use("/ws/*", middleware.EnsurePlayerID())
	app.Get("/ws/session/:sessionId", middleware.WebSocketUpgrade(origins), websocket.New(wsc.HandleConnection, wsConfig))

	api := app.Group("/api", middleware.EnsurePlayerID())

	sessions := api.Group("/session")
	sessions.Post("/", sc.CreateSession)
	sessions.Post("/:sessionId/command", sc.ExecuteCommand)
	sessions.Get("/:sessionId/board", sc.GetBoard)
	sessions.Delete("/:sessionId", sc.CloseSession)
}
