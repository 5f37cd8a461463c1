/*
Package friend contains the core logic for brokering friend requests between
connected users.

This file defines the connection registry: the mapping from user id to the
user's active channel. The registry holds at most one channel per user
(last connection wins) and is only touched inside the broker's critical
section, so it needs no locking of its own.
*/
package friend

// Channel is the outbound half of a connected user's session. The broker
// routes notifications through it without knowing the transport.
type Channel interface {
	// Deliver queues msg for the user. Delivery is best-effort, at-most-once:
	// an error means the message was dropped, and the broker never retries.
	Deliver(msg Message) error

	// Kick closes the session because it was replaced by a newer connection
	// for the same user id.
	Kick(reason string)
}

// registry maps user ids to their active channels.
type registry struct {
	conns map[string]Channel
}

func newRegistry() *registry {
	return &registry{conns: make(map[string]Channel)}
}

// register associates ch with userID and returns the channel it replaced,
// or nil if the user had no active connection.
func (g *registry) register(userID string, ch Channel) Channel {
	prev := g.conns[userID]
	g.conns[userID] = ch
	return prev
}

// unregister removes the entry for userID, but only if it still points at ch.
// A stale disconnect arriving after a replacement connection must not evict
// the newer channel. Idempotent when the entry is already gone.
func (g *registry) unregister(userID string, ch Channel) {
	if current, ok := g.conns[userID]; ok && current == ch {
		delete(g.conns, userID)
	}
}

// lookup returns the channel for userID. Absence is a normal outcome and is
// reported through ok, not an error.
func (g *registry) lookup(userID string) (Channel, bool) {
	ch, ok := g.conns[userID]
	return ch, ok
}

func (g *registry) size() int {
	return len(g.conns)
}
