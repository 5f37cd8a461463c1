/*
Package friend contains the core logic for brokering friend requests between
connected users.

This file defines the Client struct, the WebSocket session bound to one user.
It runs the read and write pumps, dispatches inbound operations to the Broker,
answers acknowledged operations with exactly one ack, and implements the
Channel interface the broker routes notifications through.
*/
package friend

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"friendlink/internal/pkg/errs"
	"friendlink/internal/pkg/logx"
)

const (
	// timeout for a single write to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time to wait for a Pong before the connection is considered dead.
	pongWait = 60 * time.Second

	// frequency of server Ping messages.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size (in bytes) of an inbound frame.
	maxMessageSize = 8192

	// sendQueueSize buffers outbound messages per connection.
	sendQueueSize = 256

	// WsCloseCodeSessionKicked is a custom WebSocket close code (4000-4999
	// range) signaling that the session was replaced by a new connection.
	WsCloseCodeSessionKicked = 4001
)

// Client is an active WebSocket session for one authenticated user.
type Client struct {
	broker *Broker

	conn *websocket.Conn

	// userID is the caller identity, fixed at connection time and never
	// re-validated per operation.
	userID string

	// send queues outbound frames for the write pump.
	send chan []byte

	logger zerolog.Logger
}

// NewClient wraps an upgraded WebSocket connection for the given user.
func NewClient(broker *Broker, wsConn *websocket.Conn, userID string) *Client {
	clientLogger := logx.Logger().With().
		Str("component", "Client").
		Str("user_id", userID).
		Logger()

	return &Client{
		broker: broker,
		conn:   wsConn,
		userID: userID,
		send:   make(chan []byte, sendQueueSize),
		logger: clientLogger,
	}
}

// UserID returns the identity bound to this session.
func (c *Client) UserID() string {
	return c.userID
}

// ReadPump reads frames from the WebSocket until the connection drops,
// handling heartbeats and dispatching operations. It unregisters the client
// from the broker on exit.
func (c *Client) ReadPump() {
	defer c.cleanupOnDisconnect()

	c.conn.SetReadLimit(maxMessageSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, messageBytes, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Error reading message (client close/going away)")
			}
			break
		}

		c.dispatch(messageBytes)
	}
}

// cleanupOnDisconnect unregisters the client and closes the connection.
// Outstanding requests are untouched: a disconnect only stops notification
// delivery until the user reconnects.
func (c *Client) cleanupOnDisconnect() {
	c.logger.Info().Msg("Client connection cleanup starting.")

	c.broker.Unregister(c.userID, c)

	if err := c.conn.Close(); err != nil {
		c.logger.Error().Err(err).Msg("Client connection close error")
	}
}

// dispatch parses one inbound frame and runs the matching broker operation.
func (c *Client) dispatch(messageBytes []byte) {
	var inbound Inbound
	if err := json.Unmarshal(messageBytes, &inbound); err != nil {
		c.logger.Warn().Err(err).
			Bytes("message_bytes", messageBytes).
			Msg("Client sent invalid JSON")
		return
	}

	switch inbound.Type {
	case TypeSend:
		c.handleSend(inbound)

	case TypeAccept:
		c.handleAccept(inbound)

	case TypeReject:
		c.handleReject(inbound)

	case TypeCancel:
		c.handleCancel(inbound)

	case TypeListPending:
		c.handleListPending(inbound)

	default:
		c.logger.Warn().Str("msg_type", string(inbound.Type)).Msg("Client sent unsupported message type")
		c.ackFailure(inbound.AckID, errs.NewError(errs.ErrInvalidParams))
	}
}

func (c *Client) handleSend(inbound Inbound) {
	var payload SendPayload
	if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
		c.logger.Warn().Err(err).Msg("Client sent invalid send payload")
		c.ackFailure(inbound.AckID, errs.NewError(errs.ErrInvalidParams))
		return
	}

	req, customErr := c.broker.Send(c.userID, payload.ToUserID, payload.Message)
	if customErr != nil {
		c.ackFailure(inbound.AckID, customErr)
		return
	}

	c.ack(AckPayload{AckID: inbound.AckID, Success: true, Request: req})
}

func (c *Client) handleAccept(inbound Inbound) {
	var payload AcceptPayload
	if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
		c.logger.Warn().Err(err).Msg("Client sent invalid accept payload")
		c.ackFailure(inbound.AckID, errs.NewError(errs.ErrInvalidParams))
		return
	}

	req, customErr := c.broker.Accept(c.userID, payload.RequestID)
	if customErr != nil {
		c.ackFailure(inbound.AckID, customErr)
		return
	}

	c.ack(AckPayload{AckID: inbound.AckID, Success: true, Request: req})
}

func (c *Client) handleReject(inbound Inbound) {
	var payload RejectPayload
	if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
		c.logger.Warn().Err(err).Msg("Client sent invalid reject payload")
		c.ackFailure(inbound.AckID, errs.NewError(errs.ErrInvalidParams))
		return
	}

	req, customErr := c.broker.Reject(c.userID, payload.RequestID, payload.Reason)
	if customErr != nil {
		c.ackFailure(inbound.AckID, customErr)
		return
	}

	c.ack(AckPayload{AckID: inbound.AckID, Success: true, Request: req})
}

func (c *Client) handleCancel(inbound Inbound) {
	var payload CancelPayload
	if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
		c.logger.Warn().Err(err).Msg("Client sent invalid cancel payload")
		c.ackFailure(inbound.AckID, errs.NewError(errs.ErrInvalidParams))
		return
	}

	if customErr := c.broker.Cancel(c.userID, payload.RequestID); customErr != nil {
		c.ackFailure(inbound.AckID, customErr)
		return
	}

	c.ack(AckPayload{AckID: inbound.AckID, Success: true})
}

func (c *Client) handleListPending(inbound Inbound) {
	pending := c.broker.ListPending(c.userID)

	c.ack(AckPayload{AckID: inbound.AckID, Success: true, Requests: pending})
}

// ack sends one acknowledgement frame. Operations without an ackId get none.
func (c *Client) ack(payload AckPayload) {
	if payload.AckID == "" {
		return
	}

	ackMsg, err := NewMessage(TypeAck, payload)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to build ack message")
		return
	}

	if err := c.queueMessage(ackMsg); err != nil {
		c.logger.Error().Err(err).Msg("Failed to queue ack message")
	}
}

// ackFailure sends a failed acknowledgement carrying the business error.
func (c *Client) ackFailure(ackID string, customErr *errs.CustomError) {
	c.ack(AckPayload{
		AckID:   ackID,
		Success: false,
		Error: &ErrorPayload{
			Code:    customErr.Code,
			Message: customErr.Message,
		},
	})
}

// Deliver implements Channel: it queues a server notification for this user.
func (c *Client) Deliver(msg Message) error {
	return c.queueMessage(msg)
}

// queueMessage marshals data and pushes it onto the send queue without
// blocking. A full queue drops the message.
func (c *Client) queueMessage(data any) error {
	messageBytes, err := json.Marshal(data)
	if err != nil {
		c.logger.Error().Err(err).Msg("Error marshaling data for client")
		return err
	}

	select {
	case c.send <- messageBytes:
		return nil
	default:
		c.logger.Warn().Int("queue_len", len(c.send)).Msg("Client send channel full, dropping message")
		return fmt.Errorf("client send queue full")
	}
}

// WritePump drains the send queue onto the WebSocket and keeps the heartbeat
// alive with periodic pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		if err := c.conn.Close(); err != nil {
			c.logger.Error().Err(err).Msg("Client connection close error in WritePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !c.writeQueuedMessage(message, ok) {
				return
			}

		case <-ticker.C:
			if !c.writePingMessage() {
				return
			}
		}
	}
}

// writeQueuedMessage writes one frame pulled from the send queue.
// Returns false when the write pump should terminate.
func (c *Client) writeQueuedMessage(message []byte, ok bool) bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline")
		return false
	}

	if !ok {
		if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
			c.logger.Error().Err(err).Msg("Error writing close message")
		}
		return false
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
		c.logger.Error().Err(err).Msg("Error writing message")
		return false
	}

	return true
}

// writePingMessage sends one heartbeat Ping.
// Returns false when the write pump should terminate.
func (c *Client) writePingMessage() bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
		return false
	}

	if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
		c.logger.Error().Err(err).Msg("Error writing ping")
		return false
	}

	return true
}

// Kick implements Channel: it closes the connection with a custom close frame
// (code 4001) telling the client its session was replaced.
func (c *Client) Kick(reason string) {
	c.logger.Warn().
		Int("close_code", WsCloseCodeSessionKicked).
		Str("reason", reason).
		Msg("Sending WS kick message and closing connection.")

	closeMessage := websocket.FormatCloseMessage(WsCloseCodeSessionKicked, reason)

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))

	if err := c.conn.WriteMessage(websocket.CloseMessage, closeMessage); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to send WS 4001 close message.")
	}

	if err := c.conn.Close(); err != nil {
		c.logger.Warn().Err(err).Msg("Client connection close error in Kick")
	}
}
