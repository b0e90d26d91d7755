// Package ws implements the WebSocket half of the node API: JSON-RPC
// subscribe/unsubscribe envelopes over a single persistent connection, with
// push notifications routed to registered callbacks by subscription id.
//
// A Client owns at most one connection, dialed lazily on the first
// subscribe. Each subscription drains its own buffered queue, so callbacks
// see notifications in arrival order and a slow callback never stalls the
// receive loop.
package ws

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/buger/jsonparser"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/solware/gosol/rpc"
)

// ErrConnClosed is returned when the connection is gone, either because the
// client was closed or the socket failed.
var ErrConnClosed = errors.New("websocket connection closed")

// Callback receives the raw result payload of one push notification.
type Callback func(result json.RawMessage)

type reply struct {
	sub    *Subscription
	result []byte
	err    error
}

// pendingRequest is an in-flight request awaiting its reply. Subscribe
// requests carry the callback so the receive loop can register the
// subscription the moment the confirmation lands, before any notification
// for it can arrive.
type pendingRequest struct {
	ch          chan reply
	cb          Callback
	method      string
	unsubMethod string
}

// Client manages JSON-RPC subscriptions over one WebSocket connection.
type Client struct {
	url string
	log *zap.Logger

	// writeMu serializes socket writes; gorilla allows one concurrent
	// writer alongside the receive loop's reader.
	writeMu sync.Mutex

	mu      sync.Mutex
	conn    *websocket.Conn
	closed  bool
	nextID  uint64
	pending map[uint64]*pendingRequest
	subs    map[uint64]*Subscription
}

type ClientConfig struct {
	// URL is the node's WebSocket endpoint, e.g. rpc.MainnetBeta.WS.
	URL string
	// Logger defaults to a nop logger.
	Logger *zap.Logger
}

func NewClient(config ClientConfig) *Client {
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	return &Client{
		url:     config.URL,
		log:     config.Logger,
		pending: make(map[uint64]*pendingRequest),
		subs:    make(map[uint64]*Subscription),
	}
}

func (c *Client) ensureConn(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrConnClosed
	}
	if c.conn != nil {
		return nil
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return errors.Wrapf(ErrConnClosed, "dial %s: %v", c.url, err)
	}
	c.conn = conn
	go c.readLoop(conn)
	return nil
}

func (c *Client) writeJSON(v interface{}) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return ErrConnClosed
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return conn.WriteJSON(v)
}

// subscribe sends the subscribe envelope and waits for the confirmation
// carrying the server-assigned subscription id. The receive loop registers
// the callback as it matches the confirmation, so delivery can begin with
// the very next message on the socket.
func (c *Client) subscribe(ctx context.Context, method, unsubMethod string, params []interface{}, cb Callback) (*Subscription, error) {
	if cb == nil {
		return nil, errors.New("nil subscription callback")
	}
	if err := c.ensureConn(ctx); err != nil {
		return nil, err
	}

	id, p, err := c.addPending(&pendingRequest{
		cb:          cb,
		method:      method,
		unsubMethod: unsubMethod,
	})
	if err != nil {
		return nil, err
	}

	request := rpc.Request{JSONRPC: "2.0", ID: id, Method: method, Params: params}
	if err := c.writeJSON(request); err != nil {
		c.dropPending(id)
		return nil, errors.Wrapf(ErrConnClosed, "%s: %v", method, err)
	}

	select {
	case <-ctx.Done():
		if c.dropPending(id) {
			// the reply never arrived; the receive loop will now ignore it
			return nil, ctx.Err()
		}
		// The receive loop already claimed the request, so its reply is
		// guaranteed to land on the channel. Release whatever registration
		// it carries: the caller has no handle to unsubscribe with.
		rep := <-p.ch
		if rep.sub != nil {
			rep.sub.unregister()
		}
		return nil, ctx.Err()
	case rep := <-p.ch:
		if rep.err != nil {
			return nil, errors.Wrapf(rep.err, "%s rejected", method)
		}
		c.log.Debug("subscribed", zap.String("method", method), zap.Uint64("subscription", rep.sub.id))
		return rep.sub, nil
	}
}

func (c *Client) addPending(p *pendingRequest) (uint64, *pendingRequest, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0, nil, ErrConnClosed
	}
	c.nextID++
	p.ch = make(chan reply, 1)
	c.pending[c.nextID] = p
	return c.nextID, p, nil
}

// dropPending removes an in-flight request and reports whether it was still
// waiting, i.e. whether the receive loop had not yet claimed it.
func (c *Client) dropPending(id uint64) bool {
	c.mu.Lock()
	_, ok := c.pending[id]
	delete(c.pending, id)
	c.mu.Unlock()
	return ok
}

func (c *Client) readLoop(conn *websocket.Conn) {
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			c.teardown(err)
			return
		}
		c.dispatch(message)
	}
}

// dispatch routes one inbound message: replies are matched to a pending
// request by id, notifications to a subscription by params.subscription.
func (c *Client) dispatch(message []byte) {
	if id, err := jsonparser.GetInt(message, "id"); err == nil {
		c.dispatchReply(uint64(id), message)
		return
	}

	method, err := jsonparser.GetString(message, "method")
	if err != nil || !strings.HasSuffix(method, "Notification") {
		c.log.Debug("ignoring websocket message", zap.ByteString("message", message))
		return
	}
	subID, err := jsonparser.GetInt(message, "params", "subscription")
	if err != nil {
		c.log.Warn("notification without subscription id", zap.String("method", method), zap.Error(err))
		return
	}
	result, _, _, err := jsonparser.Get(message, "params", "result")
	if err != nil {
		c.log.Warn("notification without result", zap.String("method", method), zap.Error(err))
		return
	}

	payload := json.RawMessage(append([]byte(nil), result...))

	// Hand the payload to the subscription's dispatcher under the lock so a
	// racing Unsubscribe cannot close the channel mid-send. The send never
	// blocks; a full buffer means the callback is too slow and the message
	// is dropped rather than stalling the socket.
	c.mu.Lock()
	sub, ok := c.subs[uint64(subID)]
	if ok {
		select {
		case sub.queue <- payload:
		default:
			c.log.Warn("subscription buffer full, dropping notification",
				zap.Uint64("subscription", sub.id), zap.String("method", method))
		}
	}
	c.mu.Unlock()
	if !ok {
		c.log.Debug("notification for unknown subscription", zap.Int64("subscription", subID))
	}
}

func (c *Client) dispatchReply(id uint64, message []byte) {
	c.mu.Lock()
	p, ok := c.pending[id]
	delete(c.pending, id)
	c.mu.Unlock()
	if !ok {
		c.log.Debug("reply for unknown request", zap.Uint64("id", id))
		return
	}

	var rep reply
	if errVal, _, _, err := jsonparser.Get(message, "error"); err == nil {
		rpcErr := &rpc.RPCError{}
		if jsonErr := json.Unmarshal(errVal, rpcErr); jsonErr != nil {
			rep.err = errors.Errorf("malformed error member: %s", errVal)
		} else {
			rep.err = rpcErr
		}
	} else if result, _, _, err := jsonparser.Get(message, "result"); err == nil {
		rep.result = append([]byte(nil), result...)
	} else {
		rep.err = errors.New("reply carries neither result nor error")
	}

	if rep.err == nil && p.cb != nil {
		var subID uint64
		if err := json.Unmarshal(rep.result, &subID); err != nil {
			rep.err = errors.Wrapf(err, "parse subscription id from %s", rep.result)
		} else {
			sub := &Subscription{
				client:      c,
				id:          subID,
				method:      p.method,
				unsubMethod: p.unsubMethod,
				cb:          p.cb,
				queue:       make(chan json.RawMessage, subscriptionBuffer),
			}
			go sub.deliver()
			c.mu.Lock()
			if !c.closed {
				c.subs[subID] = sub
			} else {
				close(sub.queue)
			}
			c.mu.Unlock()
			rep.sub = sub
		}
	}

	p.ch <- rep
}

// teardown fails every in-flight request and drops every registration. Any
// later use of the client returns ErrConnClosed.
func (c *Client) teardown(cause error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	conn := c.conn
	c.conn = nil
	for id, p := range c.pending {
		delete(c.pending, id)
		p.ch <- reply{err: ErrConnClosed}
	}
	for id, sub := range c.subs {
		delete(c.subs, id)
		close(sub.queue)
	}
	c.mu.Unlock()

	if conn != nil {
		conn.Close()
	}
	if cause != nil && !websocket.IsCloseError(cause, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		c.log.Warn("websocket connection lost", zap.Error(cause))
	}
}

// Close tears down the connection and every subscription.
func (c *Client) Close() error {
	c.teardown(nil)
	return nil
}
