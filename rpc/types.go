package rpc

import "encoding/json"

// Request is a JSON-RPC 2.0 request envelope.
type Request struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      uint64        `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params,omitempty"`
}

// Response is a parsed JSON-RPC 2.0 response. Exactly one of Result and
// Error is set. A populated Error is data for the caller to branch on, not a
// Go error; Call only fails on transport problems.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

// UnmarshalResult decodes the result payload into v.
func (r *Response) UnmarshalResult(v interface{}) error {
	return json.Unmarshal(r.Result, v)
}

// RPCError is the error member of a JSON-RPC response.
type RPCError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	return e.Message
}

// Options is the trailing configuration object most RPC methods accept,
// e.g. {"commitment": "finalized", "encoding": "base64"}.
type Options map[string]interface{}

// Commitment describes how finalized a block is at the point of query.
type Commitment string

const (
	CommitmentProcessed Commitment = "processed"
	CommitmentConfirmed Commitment = "confirmed"
	CommitmentFinalized Commitment = "finalized"
)

// ContextSlot is the "context" member wrapping slot-scoped results.
type ContextSlot struct {
	Slot uint64 `json:"slot"`
}

// BalanceResult is the result shape of getBalance.
type BalanceResult struct {
	Context ContextSlot `json:"context"`
	Value   uint64      `json:"value"`
}

// AccountInfo is the value member of a getAccountInfo result.
type AccountInfo struct {
	Lamports   uint64          `json:"lamports"`
	Owner      string          `json:"owner"`
	Data       json.RawMessage `json:"data"`
	Executable bool            `json:"executable"`
	RentEpoch  uint64          `json:"rentEpoch"`
}

// AccountInfoResult is the result shape of getAccountInfo.
type AccountInfoResult struct {
	Context ContextSlot  `json:"context"`
	Value   *AccountInfo `json:"value"`
}

// EpochInfo is the result shape of getEpochInfo.
type EpochInfo struct {
	AbsoluteSlot     uint64 `json:"absoluteSlot"`
	BlockHeight      uint64 `json:"blockHeight"`
	Epoch            uint64 `json:"epoch"`
	SlotIndex        uint64 `json:"slotIndex"`
	SlotsInEpoch     uint64 `json:"slotsInEpoch"`
	TransactionCount uint64 `json:"transactionCount"`
}

// VersionInfo is the result shape of getVersion.
type VersionInfo struct {
	SolanaCore string `json:"solana-core"`
	FeatureSet uint32 `json:"feature-set"`
}

// LatestBlockhash is the value member of a getLatestBlockhash result.
type LatestBlockhash struct {
	Blockhash            string `json:"blockhash"`
	LastValidBlockHeight uint64 `json:"lastValidBlockHeight"`
}

// TokenAmount describes a token balance in raw and UI units, shared by the
// token balance and supply queries.
type TokenAmount struct {
	Amount         string  `json:"amount"`
	Decimals       int     `json:"decimals"`
	UIAmount       float64 `json:"uiAmount"`
	UIAmountString string  `json:"uiAmountString"`
}

// TokenAmountResult is the result shape of getTokenAccountBalance and
// getTokenSupply.
type TokenAmountResult struct {
	Context ContextSlot `json:"context"`
	Value   TokenAmount `json:"value"`
}

// SignatureInfo is one entry of a getSignaturesForAddress result.
type SignatureInfo struct {
	Signature          string      `json:"signature"`
	Slot               uint64      `json:"slot"`
	Err                interface{} `json:"err"`
	Memo               *string     `json:"memo"`
	BlockTime          *int64      `json:"blockTime"`
	ConfirmationStatus string      `json:"confirmationStatus"`
}

// SignatureStatus is one entry of a getSignatureStatuses result value.
type SignatureStatus struct {
	Slot               uint64      `json:"slot"`
	Confirmations      *int        `json:"confirmations"`
	Err                interface{} `json:"err"`
	ConfirmationStatus string      `json:"confirmationStatus"`
}
