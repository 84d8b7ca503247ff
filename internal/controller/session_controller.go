package controller

import (
	"errors"

	"github.com/benbeisheim/chessdev-backend/internal/command"
	"github.com/benbeisheim/chessdev-backend/internal/middleware"
	"github.com/benbeisheim/chessdev-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type SessionController struct {
	gameService *service.GameService
	logger      *zap.Logger
}

func NewSessionController(gameService *service.GameService, logger *zap.Logger) *SessionController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionController{gameService: gameService, logger: logger}
}

type commandRequest struct {
	Command string `json:"command"`
}

func (sc *SessionController) CreateSession(c *fiber.Ctx) error {
	sessionID, err := sc.gameService.CreateSession(middleware.PlayerID(c))
	if err != nil {
		return sc.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Session created",
		"session_id": sessionID,
	})
}

func (sc *SessionController) ExecuteCommand(c *fiber.Ctx) error {
	var req commandRequest
	if err := c.BodyParser(&req); err != nil || req.Command == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "body must be {\"command\": \"<line>\"}",
		})
	}

	reply, err := sc.gameService.Execute(c.UserContext(), c.Params("sessionId"), middleware.PlayerID(c), req.Command)
	if err != nil {
		return sc.fail(c, err)
	}
	return c.JSON(reply)
}

func (sc *SessionController) GetBoard(c *fiber.Ctx) error {
	rows, err := sc.gameService.Board(c.Params("sessionId"))
	if err != nil {
		return sc.fail(c, err)
	}
	return c.JSON(fiber.Map{"rows": rows})
}

func (sc *SessionController) CloseSession(c *fiber.Ctx) error {
	if err := sc.gameService.CloseSession(c.Params("sessionId"), middleware.PlayerID(c)); err != nil {
		return sc.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// fail writes err with the HTTP status it maps to.
func (sc *SessionController) fail(c *fiber.Ctx, err error) error {
	status := httpStatus(err)
	if status == fiber.StatusInternalServerError {
		sc.logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	}
	body := fiber.Map{"error": err.Error()}
	if errors.Is(err, command.ErrNoGame) {
		body["status"] = command.NoGame
	}
	return c.Status(status).JSON(body)
}

func httpStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrNotSessionOwner):
		return fiber.StatusForbidden
	case errors.Is(err, service.ErrMissingOwner):
		return fiber.StatusUnauthorized
	case errors.Is(err, service.ErrTooManySessions):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, command.ErrNoGame):
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}
