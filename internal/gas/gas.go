// Package gas holds the protocol-fixed gas accounting used by the
// static estimation path. Constants follow the Ethereum Yellow Paper
// and EIP-2028.
package gas

const (
	// TxBase is the intrinsic cost of any message call transaction.
	TxBase uint64 = 21000

	// TxDataZero is the cost per zero byte of calldata.
	TxDataZero uint64 = 4

	// TxDataNonZero is the cost per non-zero byte of calldata (EIP-2028).
	TxDataNonZero uint64 = 16

	// TxCreate is the surcharge for contract-creating transactions.
	TxCreate uint64 = 32000

	// CodeDeposit is the per-byte cost of storing deployed code.
	CodeDeposit uint64 = 200
)

// Transfer returns the fixed cost of a simple value transfer to an
// account with no code. This is the only estimate the engine computes
// without the network.
func Transfer() uint64 {
	return TxBase
}

// Intrinsic returns the intrinsic gas of a transaction carrying the
// given calldata (init code when create is true). It is a lower bound
// on execution cost, not an execution estimate: anything with data or
// no recipient still goes to the node for the real figure.
func Intrinsic(data []byte, create bool) uint64 {
	g := TxBase
	if create {
		g += TxCreate
	}
	for _, b := range data {
		if b == 0 {
			g += TxDataZero
		} else {
			g += TxDataNonZero
		}
	}
	if create {
		g += uint64(len(data)) * CodeDeposit
	}
	return g
}
