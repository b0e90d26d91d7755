package ws

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/solware/gosol/rpc"
)

// subscriptionBuffer bounds how many undelivered notifications a slow
// callback can queue before further ones are dropped.
const subscriptionBuffer = 64

// Subscription is one live registration: push messages carrying its
// server-assigned id are delivered to its callback, one at a time and in
// the order received, until Unsubscribe is called or the connection closes.
type Subscription struct {
	client      *Client
	id          uint64
	method      string
	unsubMethod string
	cb          Callback
	queue       chan json.RawMessage
}

// deliver drains the queue into the callback. It exits when the queue is
// closed by Unsubscribe or connection teardown.
func (s *Subscription) deliver() {
	for payload := range s.queue {
		s.cb(payload)
	}
}

// ID returns the server-assigned subscription id.
func (s *Subscription) ID() uint64 {
	return s.id
}

// unregister drops the local registration and stops the dispatcher. Safe to
// call more than once; the pointer comparison keeps a stale handle from
// tearing down a newer subscription that reuses the same server id.
func (s *Subscription) unregister() {
	c := s.client
	c.mu.Lock()
	if current, registered := c.subs[s.id]; registered && current == s {
		delete(c.subs, s.id)
		close(s.queue)
	}
	c.mu.Unlock()
}

// Unsubscribe drops the local callback registration and sends the matching
// unsubscribe envelope. The registration is removed before the server
// replies, so no further pushes reach the callback even if a notification
// races the reply.
func (s *Subscription) Unsubscribe(ctx context.Context) error {
	c := s.client

	s.unregister()

	id, p, err := c.addPending(&pendingRequest{})
	if err != nil {
		return err
	}

	request := rpc.Request{JSONRPC: "2.0", ID: id, Method: s.unsubMethod, Params: []interface{}{s.id}}
	if err := c.writeJSON(request); err != nil {
		c.dropPending(id)
		return errors.Wrapf(ErrConnClosed, "%s: %v", s.unsubMethod, err)
	}

	select {
	case <-ctx.Done():
		c.dropPending(id)
		return ctx.Err()
	case rep := <-p.ch:
		if rep.err != nil {
			return errors.Wrapf(rep.err, "%s rejected", s.unsubMethod)
		}
		var ok bool
		if err := json.Unmarshal(rep.result, &ok); err == nil && !ok {
			return errors.Errorf("%s: server did not release subscription %d", s.unsubMethod, s.id)
		}
		return nil
	}
}

// LogsFilterAll subscribes to all transaction logs except vote transactions.
const LogsFilterAll = "all"

// Mentions builds the logs/block filter selecting transactions that mention
// any of the given account keys.
func Mentions(pubkeys ...string) map[string][]string {
	return map[string][]string{"mentions": pubkeys}
}

// AccountSubscribe delivers account state changes for pubkey.
func (c *Client) AccountSubscribe(ctx context.Context, pubkey string, opts rpc.Options, cb Callback) (*Subscription, error) {
	if opts == nil {
		opts = rpc.Options{}
	}
	return c.subscribe(ctx, "accountSubscribe", "accountUnsubscribe", []interface{}{pubkey, opts}, cb)
}

// ProgramSubscribe delivers state changes for every account owned by the
// given program.
func (c *Client) ProgramSubscribe(ctx context.Context, program string, opts rpc.Options, cb Callback) (*Subscription, error) {
	if opts == nil {
		opts = rpc.Options{}
	}
	return c.subscribe(ctx, "programSubscribe", "programUnsubscribe", []interface{}{program, opts}, cb)
}

// LogsSubscribe delivers transaction log messages matching filter, which is
// either LogsFilterAll or a Mentions filter.
func (c *Client) LogsSubscribe(ctx context.Context, filter interface{}, opts rpc.Options, cb Callback) (*Subscription, error) {
	if opts == nil {
		opts = rpc.Options{}
	}
	return c.subscribe(ctx, "logsSubscribe", "logsUnsubscribe", []interface{}{filter, opts}, cb)
}

// BlockSubscribe delivers new blocks matching filter ("all" or a Mentions
// filter keyed by mentionsAccountOrProgram).
func (c *Client) BlockSubscribe(ctx context.Context, filter interface{}, opts rpc.Options, cb Callback) (*Subscription, error) {
	if opts == nil {
		opts = rpc.Options{}
	}
	return c.subscribe(ctx, "blockSubscribe", "blockUnsubscribe", []interface{}{filter, opts}, cb)
}

// SlotSubscribe delivers a notification every time a slot is processed.
func (c *Client) SlotSubscribe(ctx context.Context, cb Callback) (*Subscription, error) {
	return c.subscribe(ctx, "slotSubscribe", "slotUnsubscribe", nil, cb)
}
