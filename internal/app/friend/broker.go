/*
Package friend contains the core logic for brokering friend requests between
connected users.

This file defines the Broker, the single owner of the connection registry and
the request store. Every operation runs to completion under one mutex, so
state transitions are atomic with respect to each other and notifications for
a given user leave in the order the transitions happened.
*/
package friend

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"friendlink/internal/pkg/errs"
	"friendlink/internal/pkg/logx"
)

// Broker matches senders and recipients and enforces the friend-request
// state machine. One instance lives for the whole server process.
type Broker struct {
	// mu serializes every operation that touches the registry or the store.
	mu sync.Mutex

	// registry tracks which users currently have an active channel.
	registry *registry

	// requests stores every live request record, keyed by request id.
	requests map[string]*Request

	// nextSeq feeds the monotonic request id counter.
	nextSeq uint64

	// now is swappable for tests.
	now func() time.Time

	logger zerolog.Logger
}

// Stats is the diagnostics summary exposed on the health endpoint.
type Stats struct {
	ConnectedUsers int `json:"connectedUsers"`
	StoredRequests int `json:"storedRequests"`
}

// NewBroker constructs a Broker with empty state.
func NewBroker() *Broker {
	return &Broker{
		registry: newRegistry(),
		requests: make(map[string]*Request),
		now:      time.Now,
		logger:   logx.Logger().With().Str("component", "Broker").Logger(),
	}
}

// Register associates ch with userID. If the user already had a connection,
// the old channel is kicked after the registry is updated: last connection
// wins, there is no multi-device fan-out.
func (b *Broker) Register(userID string, ch Channel) {
	b.mu.Lock()
	prev := b.registry.register(userID, ch)
	total := b.registry.size()
	b.mu.Unlock()

	b.logger.Info().
		Str("user_id", userID).
		Int("connected_users", total).
		Msg("User channel registered.")

	if prev != nil {
		b.logger.Warn().
			Str("user_id", userID).
			Msg("User already connected. Kicking old connection for replacement.")

		prev.Kick("Session replaced by new connection. Check other tabs.")
	}
}

// Unregister removes userID's entry if it still points at ch. Disconnecting
// never touches stored requests; it only stops future notification delivery
// until the user reconnects.
func (b *Broker) Unregister(userID string, ch Channel) {
	b.mu.Lock()
	b.registry.unregister(userID, ch)
	total := b.registry.size()
	b.mu.Unlock()

	b.logger.Info().
		Str("user_id", userID).
		Int("connected_users", total).
		Msg("User channel unregistered.")
}

// Send creates a new pending request from fromUserID to toUserID and notifies
// the recipient. The recipient must be connected at send time; afterwards the
// record outlives either party's connection.
func (b *Broker) Send(fromUserID, toUserID, message string) (*Request, *errs.CustomError) {
	if toUserID == "" {
		return nil, errs.NewError(errs.ErrInvalidParams)
	}

	if toUserID == fromUserID {
		return nil, errs.NewError(errs.ErrInvalidParams)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	target, ok := b.registry.lookup(toUserID)
	if !ok {
		b.logger.Info().
			Str("from_user_id", fromUserID).
			Str("to_user_id", toUserID).
			Msg("Send refused: target not connected.")

		return nil, errs.NewError(errs.ErrTargetUnreachable)
	}

	b.nextSeq++
	req := &Request{
		ID:         fmt.Sprintf("req_%d", b.nextSeq),
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Status:     StatusPending,
		Message:    message,
		CreatedAt:  b.now(),
		seq:        b.nextSeq,
	}
	b.requests[req.ID] = req

	b.logger.Info().
		Str("request_id", req.ID).
		Str("from_user_id", fromUserID).
		Str("to_user_id", toUserID).
		Msg("Friend request created.")

	b.notify(target, toUserID, TypeReceived, EventPayload{Request: *req})

	snapshot := *req
	return &snapshot, nil
}

// Accept moves a pending request to accepted. Only the recipient may accept,
// and only while the request is pending. The sender is notified if connected.
func (b *Broker) Accept(callerID, requestID string) (*Request, *errs.CustomError) {
	return b.decide(callerID, requestID, StatusAccepted, "")
}

// Reject moves a pending request to rejected. Only the recipient may reject.
// The optional reason travels in the sender's notification.
func (b *Broker) Reject(callerID, requestID, reason string) (*Request, *errs.CustomError) {
	return b.decide(callerID, requestID, StatusRejected, reason)
}

// decide applies the recipient's terminal decision to a pending request.
func (b *Broker) decide(callerID, requestID string, verdict Status, reason string) (*Request, *errs.CustomError) {
	if requestID == "" {
		return nil, errs.NewError(errs.ErrInvalidParams)
	}

	verb := "accept"
	eventType := TypeAccepted
	if verdict == StatusRejected {
		verb = "reject"
		eventType = TypeRejected
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	req, ok := b.requests[requestID]
	if !ok {
		return nil, errs.NewError(errs.ErrRequestNotFound)
	}

	if req.ToUserID != callerID {
		b.logger.Warn().
			Str("request_id", requestID).
			Str("caller_id", callerID).
			Str("expected_recipient", req.ToUserID).
			Msgf("Unauthorized %s attempt.", verb)

		return nil, errs.NewError(errs.ErrNotAuthorized)
	}

	if !req.IsPending() {
		return nil, errs.NewError(errs.ErrInvalidState, verb)
	}

	req.Status = verdict

	b.logger.Info().
		Str("request_id", req.ID).
		Str("status", string(verdict)).
		Msg("Friend request decided.")

	if sender, ok := b.registry.lookup(req.FromUserID); ok {
		b.notify(sender, req.FromUserID, eventType, EventPayload{Request: *req, Reason: reason})
	}

	snapshot := *req
	return &snapshot, nil
}

// Cancel deletes a pending request entirely. Only the sender may cancel.
// The recipient is notified with the pre-deletion snapshot if connected.
func (b *Broker) Cancel(callerID, requestID string) *errs.CustomError {
	if requestID == "" {
		return errs.NewError(errs.ErrInvalidParams)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	req, ok := b.requests[requestID]
	if !ok {
		return errs.NewError(errs.ErrRequestNotFound)
	}

	if req.FromUserID != callerID {
		b.logger.Warn().
			Str("request_id", requestID).
			Str("caller_id", callerID).
			Str("expected_sender", req.FromUserID).
			Msg("Unauthorized cancel attempt.")

		return errs.NewError(errs.ErrNotAuthorized)
	}

	if !req.IsPending() {
		return errs.NewError(errs.ErrInvalidState, "cancel")
	}

	snapshot := *req
	delete(b.requests, requestID)

	b.logger.Info().
		Str("request_id", requestID).
		Msg("Friend request cancelled and removed.")

	if recipient, ok := b.registry.lookup(req.ToUserID); ok {
		b.notify(recipient, req.ToUserID, TypeCancelled, EventPayload{Request: snapshot})
	}

	return nil
}

// ListPending returns snapshots of every stored request addressed to callerID
// that is still pending, in creation order.
func (b *Broker) ListPending(callerID string) []Request {
	b.mu.Lock()
	defer b.mu.Unlock()

	pending := make([]Request, 0)
	for _, req := range b.requests {
		if req.ToUserID == callerID && req.IsPending() {
			pending = append(pending, *req)
		}
	}

	sortBySeq(pending)
	return pending
}

// Stats reports the connected-user count and the stored request count.
func (b *Broker) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()

	return Stats{
		ConnectedUsers: b.registry.size(),
		StoredRequests: len(b.requests),
	}
}

// DumpRequests returns snapshots of every stored request, in creation order.
// Diagnostics only.
func (b *Broker) DumpRequests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()

	all := make([]Request, 0, len(b.requests))
	for _, req := range b.requests {
		all = append(all, *req)
	}

	sortBySeq(all)
	return all
}

// Shutdown drops all broker state. Connections themselves are closed by the
// HTTP server's shutdown.
func (b *Broker) Shutdown() {
	b.mu.Lock()
	connected := b.registry.size()
	stored := len(b.requests)
	b.registry = newRegistry()
	b.requests = make(map[string]*Request)
	b.mu.Unlock()

	b.logger.Info().
		Int("connected_users", connected).
		Int("stored_requests", stored).
		Msg("Broker shutdown complete.")
}

// notify delivers a fire-and-forget notification. A failed delivery is logged
// and swallowed; clients needing reliability poll list_pending instead.
func (b *Broker) notify(ch Channel, userID string, msgType MessageType, payload EventPayload) {
	msg, err := NewMessage(msgType, payload)
	if err != nil {
		b.logger.Error().
			Err(err).
			Str("msg_type", string(msgType)).
			Msg("Failed to build notification message.")
		return
	}

	if err := ch.Deliver(msg); err != nil {
		b.logger.Warn().
			Err(err).
			Str("user_id", userID).
			Str("msg_type", string(msgType)).
			Msg("Notification dropped.")
	}
}

// sortBySeq orders request snapshots by creation sequence.
func sortBySeq(reqs []Request) {
	sort.Slice(reqs, func(i, j int) bool {
		return reqs[i].seq < reqs[j].seq
	})
}
