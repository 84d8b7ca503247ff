package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages exchanged on a session socket
type MessageType string

const (
	MessageTypeCommand MessageType = "command"
	MessageTypeReply   MessageType = "reply"
	MessageTypeError   MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// CommandPayload carries one protocol line, e.g. "02WPe2-e4".
type CommandPayload struct {
	Command string `json:"command"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

// NewMessage marshals payload into a message of the given type.
func NewMessage(t MessageType, payload interface{}) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: raw}, nil
}

// DecodeCommand reads a text frame. A frame holding a JSON message must be
// of type "command"; anything else is taken as a raw protocol line.
func DecodeCommand(frame []byte) (string, error) {
	var msg Message
	if err := json.Unmarshal(frame, &msg); err != nil || msg.Type == "" {
		return string(frame), nil
	}
	if msg.Type != MessageTypeCommand {
		return "", &UnknownTypeError{Type: msg.Type}
	}
	var cmd CommandPayload
	if err := json.Unmarshal(msg.Payload, &cmd); err != nil {
		return "", err
	}
	return cmd.Command, nil
}

type UnknownTypeError struct {
	Type MessageType
}

func (e *UnknownTypeError) Error() string {
	return "unknown message type: " + string(e.Type)
}
