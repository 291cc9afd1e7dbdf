package dto

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Method identifies how a gas estimate was derived.
type Method string

const (
	// MethodStatic means the estimate came from the protocol-fixed
	// intrinsic cost, without any network access.
	MethodStatic Method = "static"

	// MethodRPC means the estimate came from an eth_estimateGas call to
	// the upstream node.
	MethodRPC Method = "rpc"
)

// GasEstimateRequest is a decoded, validated request for a gas estimate.
// A nil To signals contract creation. A nil Value means zero.
// The blob fields are EIP-4844 extensions; any of them being set routes
// the request to the node.
type GasEstimateRequest struct {
	From             common.Address
	To               *common.Address
	Value            *big.Int
	Data             []byte
	BlobHashes       []common.Hash
	MaxFeePerBlobGas *big.Int
	TxType           *uint8
}

// GasEstimateResult is the engine's answer: the gas-unit figure and the
// method that produced it.
type GasEstimateResult struct {
	GasLimit uint64
	Method   Method
}
