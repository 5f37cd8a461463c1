/*
Package friend contains the core logic for brokering friend requests between
connected users.

This file defines the wire protocol: the message envelope exchanged over a
WebSocket, the event type constants, and the payload structures for client
operations, acknowledgements and server notifications.
*/
package friend

import (
	"encoding/json"
	"time"

	"friendlink/internal/pkg/randx"
)

// MessageType names a wire event.
type MessageType string

// Client-initiated operations.
const (
	TypeSend        MessageType = "send"
	TypeAccept      MessageType = "accept"
	TypeReject      MessageType = "reject"
	TypeCancel      MessageType = "cancel"
	TypeListPending MessageType = "list_pending"
)

// Server-initiated messages.
const (
	// TypeAck answers a client operation that carried an ackId.
	TypeAck MessageType = "ack"

	// TypeReceived tells the recipient a new request arrived.
	TypeReceived MessageType = "received"

	// TypeAccepted and TypeRejected tell the sender the recipient decided.
	TypeAccepted MessageType = "accepted"
	TypeRejected MessageType = "rejected"

	// TypeCancelled tells the recipient the sender withdrew a pending request.
	TypeCancelled MessageType = "cancelled"

	// TypeError reports a failure outside any acknowledged operation.
	TypeError MessageType = "error"
)

// Message is the envelope for every server-to-client frame.
type Message struct {
	ID        string          `json:"id"`
	Type      MessageType     `json:"type"`
	Timestamp int64           `json:"timestamp"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// NewMessage builds an envelope of the given type around payload.
func NewMessage(msgType MessageType, payload any) (Message, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}

	return Message{
		ID:        randx.MessageID(),
		Type:      msgType,
		Timestamp: time.Now().UnixMilli(),
		Payload:   payloadBytes,
	}, nil
}

// Inbound is the envelope for every client-to-server frame. AckID is optional;
// when present the server answers with exactly one TypeAck message echoing it.
type Inbound struct {
	Type    MessageType     `json:"type"`
	AckID   string          `json:"ackId,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// SendPayload is the input for TypeSend.
type SendPayload struct {
	ToUserID string `json:"toUserId"`
	Message  string `json:"message,omitempty"`
}

// AcceptPayload is the input for TypeAccept.
type AcceptPayload struct {
	RequestID string `json:"requestId"`
}

// RejectPayload is the input for TypeReject.
type RejectPayload struct {
	RequestID string `json:"requestId"`
	Reason    string `json:"reason,omitempty"`
}

// CancelPayload is the input for TypeCancel.
type CancelPayload struct {
	RequestID string `json:"requestId"`
}

// ErrorPayload carries a business error code and message.
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// AckPayload answers an acknowledged client operation. Exactly one of the
// result fields is set on success, depending on the operation.
type AckPayload struct {
	AckID   string        `json:"ackId"`
	Success bool          `json:"success"`
	Error   *ErrorPayload `json:"error,omitempty"`

	Request  *Request  `json:"request,omitempty"`
	Requests []Request `json:"requests,omitempty"`
}

// EventPayload carries a request snapshot in a server notification.
// Reason is set only on TypeRejected when the recipient supplied one.
type EventPayload struct {
	Request Request `json:"request"`
	Reason  string  `json:"reason,omitempty"`
}
