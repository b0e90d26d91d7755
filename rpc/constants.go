package rpc

const (
	// SystemProgramID is the native system program account.
	SystemProgramID = "11111111111111111111111111111111"

	// LamportsPerSOL is the number of lamports in one SOL.
	LamportsPerSOL = 1_000_000_000

	// PublicKeyLength is the byte length of an account address.
	PublicKeyLength = 32

	// MaxPacketSize is the IPv6-minimum-MTU bound on a serialized
	// transaction packet.
	MaxPacketSize = 1232
)
