/*
Package friend contains the core logic for brokering friend requests between
connected users.

This file defines the Request record and its lifecycle states. A request is
created pending, moves to exactly one terminal state (accepted or rejected)
through the recipient, or disappears entirely when the sender cancels it.
*/
package friend

import "time"

// Status is the lifecycle state of a friend request.
// Cancellation removes the record instead of adding a fourth state.
type Status string

const (
	// StatusPending marks a request awaiting the recipient's decision.
	StatusPending Status = "pending"

	// StatusAccepted marks a request the recipient accepted. Terminal.
	StatusAccepted Status = "accepted"

	// StatusRejected marks a request the recipient rejected. Terminal.
	StatusRejected Status = "rejected"
)

// Request is a single friend request record.
// FromUserID, ToUserID, Message and CreatedAt are immutable after creation;
// only Status changes, and only through the broker.
type Request struct {
	// ID is unique for the process lifetime, assigned from a monotonic counter.
	ID string `json:"id"`

	FromUserID string `json:"fromUserId"`
	ToUserID   string `json:"toUserId"`

	Status Status `json:"status"`

	// Message is optional free text attached by the sender.
	Message string `json:"message,omitempty"`

	CreatedAt time.Time `json:"createdAt"`

	// seq orders requests by creation for stable listings.
	seq uint64
}

// IsPending reports whether the request still awaits a decision.
func (r *Request) IsPending() bool {
	return r.Status == StatusPending
}
