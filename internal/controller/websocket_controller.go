package controller

import (
	"context"
	"time"

	"github.com/benbeisheim/chessdev-backend/internal/middleware"
	"github.com/benbeisheim/chessdev-backend/internal/service"
	"github.com/benbeisheim/chessdev-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

const (
	wsPingInterval = 30 * time.Second
	wsWriteWait    = 10 * time.Second
)

type WebSocketController struct {
	gameService  *service.GameService
	logger       *zap.Logger
	pingInterval time.Duration
}

type WebSocketOption func(*WebSocketController)

// WithPingInterval sets how often idle connections are pinged.
func WithPingInterval(d time.Duration) WebSocketOption {
	return func(wsc *WebSocketController) { wsc.pingInterval = d }
}

func NewWebSocketController(gameService *service.GameService, logger *zap.Logger, opts ...WebSocketOption) *WebSocketController {
	if logger == nil {
		logger = zap.NewNop()
	}
	wsc := &WebSocketController{
		gameService:  gameService,
		logger:       logger,
		pingInterval: wsPingInterval,
	}
	for _, opt := range opts {
		opt(wsc)
	}
	return wsc
}

// HandleConnection reads command lines from the socket until it closes and
// answers each one with a reply or error message.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	sessionID := c.Params("sessionId")
	playerID, _ := c.Locals(middleware.PlayerIDKey).(string)
	log := wsc.logger.With(zap.String("session", sessionID), zap.String("player", playerID))
	log.Info("websocket connected")
	defer log.Info("websocket closed")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go wsc.heartbeat(ctx, c, log)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("read error", zap.Error(err))
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		line, err := ws.DecodeCommand(message)
		if err != nil {
			wsc.sendError(c, err)
			continue
		}

		reply, err := wsc.gameService.Execute(ctx, sessionID, playerID, line)
		if err != nil {
			log.Debug("command refused", zap.String("command", line), zap.Error(err))
			wsc.sendError(c, err)
			continue
		}
		wsc.send(c, ws.MessageTypeReply, reply)
	}
}

// heartbeat pings the peer until ctx ends. A failed ping closes the
// connection, which ends the read loop.
func (wsc *WebSocketController) heartbeat(ctx context.Context, c *websocket.Conn, log *zap.Logger) {
	ticker := time.NewTicker(wsc.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				log.Debug("ping failed", zap.Error(err))
				_ = c.Close()
				return
			}
		}
	}
}

func (wsc *WebSocketController) send(c *websocket.Conn, t ws.MessageType, payload interface{}) {
	msg, err := ws.NewMessage(t, payload)
	if err != nil {
		wsc.logger.Error("encode message", zap.Error(err))
		return
	}
	if err := c.WriteJSON(msg); err != nil {
		wsc.logger.Warn("write error", zap.Error(err))
	}
}

// Helper method to send error messages
func (wsc *WebSocketController) sendError(c *websocket.Conn, err error) {
	wsc.send(c, ws.MessageTypeError, ws.ErrorPayload{Error: err.Error()})
}
