package rpc

import (
	"context"

	"github.com/pkg/errors"
)

// methodSpec pins down the wire shape of one RPC method: how many
// positional params it takes and whether a trailing configuration object
// follows them. Keeping the arity rules in one table keeps them auditable
// and the wrappers below trivial.
type methodSpec struct {
	arity      int
	hasOptions bool
}

var methodTable = map[string]methodSpec{
	"getAccountInfo":                    {arity: 1, hasOptions: true},
	"getBalance":                        {arity: 1, hasOptions: true},
	"getBlock":                          {arity: 1, hasOptions: true},
	"getBlockHeight":                    {arity: 0, hasOptions: true},
	"getBlockTime":                      {arity: 1},
	"getClusterNodes":                   {arity: 0},
	"getEpochInfo":                      {arity: 0, hasOptions: true},
	"getFirstAvailableBlock":            {arity: 0},
	"getGenesisHash":                    {arity: 0},
	"getHealth":                         {arity: 0},
	"getIdentity":                       {arity: 0},
	"getLatestBlockhash":                {arity: 0, hasOptions: true},
	"getMinimumBalanceForRentExemption": {arity: 1, hasOptions: true},
	"getRecentPerformanceSamples":       {arity: 1},
	"getSignatureStatuses":              {arity: 1, hasOptions: true},
	"getSignaturesForAddress":           {arity: 1, hasOptions: true},
	"getSlot":                           {arity: 0, hasOptions: true},
	"getSlotLeader":                     {arity: 0, hasOptions: true},
	"getSupply":                         {arity: 0, hasOptions: true},
	"getTokenAccountBalance":            {arity: 1, hasOptions: true},
	"getTokenAccountsByOwner":           {arity: 2, hasOptions: true},
	"getTokenSupply":                    {arity: 1, hasOptions: true},
	"getTransaction":                    {arity: 1, hasOptions: true},
	"getTransactionCount":               {arity: 0, hasOptions: true},
	"getVersion":                        {arity: 0},
	"requestAirdrop":                    {arity: 2, hasOptions: true},
}

// invoke checks args against the method table and appends the options
// object when the method carries one. Methods with an options slot always
// send it, as an empty object when the caller passed nil, so the param
// arity on the wire is fixed per method.
func (c *Client) invoke(ctx context.Context, method string, opts Options, args ...interface{}) (*Response, error) {
	spec, ok := methodTable[method]
	if !ok {
		return nil, errors.Errorf("unknown rpc method %q", method)
	}
	if len(args) != spec.arity {
		return nil, errors.Errorf("%s takes %d positional params, got %d", method, spec.arity, len(args))
	}
	params := make([]interface{}, 0, len(args)+1)
	params = append(params, args...)
	if spec.hasOptions {
		if opts == nil {
			opts = Options{}
		}
		params = append(params, opts)
	}
	return c.Call(ctx, method, params...)
}

func (c *Client) GetAccountInfo(ctx context.Context, pubkey string, opts Options) (*Response, error) {
	return c.invoke(ctx, "getAccountInfo", opts, pubkey)
}

func (c *Client) GetBalance(ctx context.Context, pubkey string, opts Options) (*Response, error) {
	return c.invoke(ctx, "getBalance", opts, pubkey)
}

func (c *Client) GetBlock(ctx context.Context, slot uint64, opts Options) (*Response, error) {
	return c.invoke(ctx, "getBlock", opts, slot)
}

func (c *Client) GetBlockHeight(ctx context.Context, opts Options) (*Response, error) {
	return c.invoke(ctx, "getBlockHeight", opts)
}

func (c *Client) GetBlockTime(ctx context.Context, slot uint64) (*Response, error) {
	return c.invoke(ctx, "getBlockTime", nil, slot)
}

func (c *Client) GetClusterNodes(ctx context.Context) (*Response, error) {
	return c.invoke(ctx, "getClusterNodes", nil)
}

func (c *Client) GetEpochInfo(ctx context.Context, opts Options) (*Response, error) {
	return c.invoke(ctx, "getEpochInfo", opts)
}

func (c *Client) GetFirstAvailableBlock(ctx context.Context) (*Response, error) {
	return c.invoke(ctx, "getFirstAvailableBlock", nil)
}

func (c *Client) GetGenesisHash(ctx context.Context) (*Response, error) {
	return c.invoke(ctx, "getGenesisHash", nil)
}

func (c *Client) GetHealth(ctx context.Context) (*Response, error) {
	return c.invoke(ctx, "getHealth", nil)
}

func (c *Client) GetIdentity(ctx context.Context) (*Response, error) {
	return c.invoke(ctx, "getIdentity", nil)
}

func (c *Client) GetLatestBlockhash(ctx context.Context, opts Options) (*Response, error) {
	return c.invoke(ctx, "getLatestBlockhash", opts)
}

func (c *Client) GetMinimumBalanceForRentExemption(ctx context.Context, dataLength uint64, opts Options) (*Response, error) {
	return c.invoke(ctx, "getMinimumBalanceForRentExemption", opts, dataLength)
}

func (c *Client) GetRecentPerformanceSamples(ctx context.Context, limit uint64) (*Response, error) {
	return c.invoke(ctx, "getRecentPerformanceSamples", nil, limit)
}

func (c *Client) GetSignatureStatuses(ctx context.Context, signatures []string, opts Options) (*Response, error) {
	return c.invoke(ctx, "getSignatureStatuses", opts, signatures)
}

func (c *Client) GetSignaturesForAddress(ctx context.Context, address string, opts Options) (*Response, error) {
	return c.invoke(ctx, "getSignaturesForAddress", opts, address)
}

func (c *Client) GetSlot(ctx context.Context, opts Options) (*Response, error) {
	return c.invoke(ctx, "getSlot", opts)
}

func (c *Client) GetSlotLeader(ctx context.Context, opts Options) (*Response, error) {
	return c.invoke(ctx, "getSlotLeader", opts)
}

func (c *Client) GetSupply(ctx context.Context, opts Options) (*Response, error) {
	return c.invoke(ctx, "getSupply", opts)
}

func (c *Client) GetTokenAccountBalance(ctx context.Context, account string, opts Options) (*Response, error) {
	return c.invoke(ctx, "getTokenAccountBalance", opts, account)
}

// GetTokenAccountsByOwner queries token accounts held by owner. The filter
// selects by mint or program, e.g. Options{"mint": <pubkey>}.
func (c *Client) GetTokenAccountsByOwner(ctx context.Context, owner string, filter Options, opts Options) (*Response, error) {
	return c.invoke(ctx, "getTokenAccountsByOwner", opts, owner, filter)
}

func (c *Client) GetTokenSupply(ctx context.Context, mint string, opts Options) (*Response, error) {
	return c.invoke(ctx, "getTokenSupply", opts, mint)
}

func (c *Client) GetTransaction(ctx context.Context, signature string, opts Options) (*Response, error) {
	return c.invoke(ctx, "getTransaction", opts, signature)
}

func (c *Client) GetTransactionCount(ctx context.Context, opts Options) (*Response, error) {
	return c.invoke(ctx, "getTransactionCount", opts)
}

func (c *Client) GetVersion(ctx context.Context) (*Response, error) {
	return c.invoke(ctx, "getVersion", nil)
}

func (c *Client) RequestAirdrop(ctx context.Context, pubkey string, lamports uint64, opts Options) (*Response, error) {
	return c.invoke(ctx, "requestAirdrop", opts, pubkey, lamports)
}
