package rpc

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvokeRejectsUnknownMethod(t *testing.T) {
	client := newTestClient(t, &fakeNode{t: t})

	_, err := client.invoke(context.Background(), "getBogus", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown rpc method")
}

func TestInvokeChecksArity(t *testing.T) {
	client := newTestClient(t, &fakeNode{t: t})

	_, err := client.invoke(context.Background(), "getBalance", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "positional params")

	_, err = client.invoke(context.Background(), "getVersion", nil, "extra")
	require.Error(t, err)
}

func TestOptionsAppendedOnlyWhenMethodTakesThem(t *testing.T) {
	node := &fakeNode{t: t}
	client := newTestClient(t, node)

	_, err := client.GetAccountInfo(context.Background(), testPubkey, Options{"encoding": "base64"})
	require.NoError(t, err)
	require.JSONEq(t,
		`{"jsonrpc":"2.0","method":"getAccountInfo","id":1,"params":["`+testPubkey+`",{"encoding":"base64"}]}`,
		string(node.bodies[0]))

	// getBlockTime has no options slot; none is appended
	_, err = client.GetBlockTime(context.Background(), 430)
	require.NoError(t, err)
	require.JSONEq(t,
		`{"jsonrpc":"2.0","method":"getBlockTime","id":2,"params":[430]}`,
		string(node.bodies[1]))
}

func TestTokenAccountsByOwnerShape(t *testing.T) {
	node := &fakeNode{t: t}
	client := newTestClient(t, node)

	_, err := client.GetTokenAccountsByOwner(context.Background(), testPubkey,
		Options{"mint": "So11111111111111111111111111111111111111112"},
		Options{"encoding": "jsonParsed"})
	require.NoError(t, err)

	var request Request
	require.NoError(t, json.Unmarshal(node.bodies[0], &request))
	assert.Equal(t, "getTokenAccountsByOwner", request.Method)
	require.Len(t, request.Params, 3)
	assert.Equal(t, testPubkey, request.Params[0])
}

func TestRequestAirdropShape(t *testing.T) {
	node := &fakeNode{t: t, responses: []string{
		`{"jsonrpc":"2.0","result":"5VERv8NMvzbJMEkV8xnrLkEaWRtSz9CosKDYjCJjBRnbJLgp8uirBgmQpjKhoR4tjF3ZpRzrFmBV6UjKdiSZkQUW","id":1}`,
	}}
	client := newTestClient(t, node)

	response, err := client.RequestAirdrop(context.Background(), testPubkey, LamportsPerSOL, nil)
	require.NoError(t, err)
	require.JSONEq(t,
		`{"jsonrpc":"2.0","method":"requestAirdrop","id":1,"params":["`+testPubkey+`",1000000000,{}]}`,
		string(node.bodies[0]))

	var signature string
	require.NoError(t, response.UnmarshalResult(&signature))
	assert.NotEmpty(t, signature)
}

func TestMethodTableShape(t *testing.T) {
	for name, spec := range methodTable {
		assert.GreaterOrEqual(t, spec.arity, 0, name)
		assert.LessOrEqual(t, spec.arity, 2, name)
	}
}
