// Package rpc implements a JSON-RPC 2.0 client for a Solana node's HTTP
// API. The client is a pass-through: it serializes the request envelope,
// posts it, and hands the parsed response back unchanged. JSON-RPC-level
// errors are returned as data; only transport failures become Go errors.
package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync/atomic"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrTransport is returned when the HTTP exchange itself fails: connection
// errors, non-2xx statuses, or a body that is not JSON. An HTTP 5xx is a
// transport failure, never a silent nil result.
var ErrTransport = errors.New("transport failure")

// Client issues JSON-RPC calls against one endpoint. Each client owns its
// request id counter; calls are independent and safe for concurrent use.
type Client struct {
	endpoint Endpoint
	http     *http.Client
	log      *zap.Logger

	nextID uint64
}

type ClientConfig struct {
	// Endpoint defaults to MainnetBeta.
	Endpoint Endpoint
	// HTTPClient defaults to a plain http.Client with transport defaults,
	// no timeout.
	HTTPClient *http.Client
	// Logger defaults to a nop logger.
	Logger *zap.Logger
}

func NewClient(config ClientConfig) *Client {
	if config.Endpoint == (Endpoint{}) {
		config.Endpoint = MainnetBeta
	}
	if config.HTTPClient == nil {
		config.HTTPClient = &http.Client{}
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	return &Client{
		endpoint: config.Endpoint,
		http:     config.HTTPClient,
		log:      config.Logger,
	}
}

// Endpoint returns the endpoint the client was built with.
func (c *Client) Endpoint() Endpoint {
	return c.endpoint
}

// Call sends one JSON-RPC request and returns the parsed response. The
// params slice is marshaled positionally; a nil or empty slice omits the
// params member entirely.
func (c *Client) Call(ctx context.Context, method string, params ...interface{}) (*Response, error) {
	request := Request{
		JSONRPC: "2.0",
		ID:      atomic.AddUint64(&c.nextID, 1),
		Method:  method,
		Params:  params,
	}

	payload, err := json.Marshal(request)
	if err != nil {
		return nil, errors.Wrapf(err, "marshal %s request", method)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.RPC, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrapf(err, "build %s request", method)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, errors.Wrapf(ErrTransport, "%s: %v", method, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, errors.Wrapf(ErrTransport, "%s: unexpected status %d", method, httpResp.StatusCode)
	}

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, errors.Wrapf(ErrTransport, "%s: read body: %v", method, err)
	}

	var response Response
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, errors.Wrapf(ErrTransport, "%s: invalid response body: %v", method, err)
	}

	c.log.Debug("rpc call",
		zap.String("method", method),
		zap.Uint64("id", request.ID),
		zap.Bool("rpcError", response.Error != nil))

	return &response, nil
}

// CallAsync runs Call in its own goroutine and hands the outcome to fn. It
// is the explicit callback-flavored counterpart to Call; the two are never
// mixed in one operation.
func (c *Client) CallAsync(ctx context.Context, method string, params []interface{}, fn func(*Response, error)) {
	go func() {
		fn(c.Call(ctx, method, params...))
	}()
}
