// Command chessctl plays a game against a chessdev server from the terminal.
// It creates a session, then sends each stdin line as a command over the
// session WebSocket and prints the reply.
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/benbeisheim/chessdev-backend/internal/command"
	"github.com/benbeisheim/chessdev-backend/internal/service"
	"github.com/benbeisheim/chessdev-backend/internal/ws"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

func main() {
	server := flag.String("server", "http://localhost:3000", "server base URL")
	player := flag.String("player", "", "player ID (default: random)")
	verbose := flag.Bool("v", false, "log connection details")
	flag.Parse()

	logger := zap.NewNop()
	if *verbose {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	if *player == "" {
		*player = uuid.New().String()
	}
	if err := run(*server, *player, os.Stdin, os.Stdout, logger); err != nil {
		fmt.Fprintln(os.Stderr, "chessctl:", err)
		os.Exit(1)
	}
}

func run(server, player string, in io.Reader, out io.Writer, logger *zap.Logger) error {
	base, err := url.Parse(server)
	if err != nil {
		return err
	}
	sessionID, err := createSession(base, player)
	if err != nil {
		return err
	}
	logger.Info("session created", zap.String("session", sessionID))

	wsURL := *base
	wsURL.Scheme = strings.Replace(base.Scheme, "http", "ws", 1)
	wsURL.Path = "/ws/session/" + sessionID
	wsURL.RawQuery = url.Values{"playerId": {player}}.Encode()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL.String(), nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", wsURL.Redacted(), err)
	}
	defer conn.Close()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, []byte(line)); err != nil {
			return err
		}
		var msg ws.Message
		if err := conn.ReadJSON(&msg); err != nil {
			return err
		}
		if err := printMessage(out, msg); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func createSession(base *url.URL, player string) (string, error) {
	req, err := http.NewRequest(http.MethodPost, base.JoinPath("/api/session").String(), bytes.NewReader(nil))
	if err != nil {
		return "", err
	}
	req.Header.Set("X-Player-ID", player)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var body struct {
		SessionID string `json:"session_id"`
		Error     string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("create session: %s: %w", resp.Status, err)
	}
	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("create session: %s: %s", resp.Status, body.Error)
	}
	return body.SessionID, nil
}

// printMessage writes a board as eight lines, any other reply as its token.
func printMessage(w io.Writer, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeReply:
		var r service.Reply
		if err := json.Unmarshal(msg.Payload, &r); err != nil {
			return err
		}
		if len(r.Board) == 0 {
			_, err := fmt.Fprintln(w, r.Status)
			return err
		}
		_, err := io.WriteString(w, command.FormatBoard(r.Board))
		return err
	case ws.MessageTypeError:
		var e ws.ErrorPayload
		if err := json.Unmarshal(msg.Payload, &e); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w, "error:", e.Error)
		return err
	}
	return fmt.Errorf("unexpected %q message", msg.Type)
}
