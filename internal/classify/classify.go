package classify

import "github.com/fleshka4/gas-estimator/internal/service/dto"

// Category is the closed set of transaction shapes the engine
// distinguishes. The orchestrator switches over it exhaustively, so a
// new category is a compile-time exercise.
type Category int

const (
	// SimpleTransfer is a plain value transfer: recipient present, no
	// call data.
	SimpleTransfer Category = iota

	// ContractCall carries call data to an existing recipient.
	ContractCall

	// ContractCreation has no recipient; data, if any, is init code.
	ContractCreation

	// BlobTransaction carries EIP-4844 blob fields.
	BlobTransaction
)

// String implements fmt.Stringer.
func (c Category) String() string {
	switch c {
	case SimpleTransfer:
		return "simple_transfer"
	case ContractCall:
		return "contract_call"
	case ContractCreation:
		return "contract_creation"
	case BlobTransaction:
		return "blob_transaction"
	default:
		return "unknown"
	}
}

// blobTxType is the EIP-4844 transaction type byte.
const blobTxType = 0x03

// Classify assigns a structurally valid request to exactly one
// category. First match wins; classification never fails and never
// touches the network.
func Classify(req dto.GasEstimateRequest) Category {
	if isBlob(req) {
		return BlobTransaction
	}
	if req.To == nil {
		return ContractCreation
	}
	if len(req.Data) == 0 {
		return SimpleTransfer
	}
	return ContractCall
}

func isBlob(req dto.GasEstimateRequest) bool {
	if len(req.BlobHashes) > 0 || req.MaxFeePerBlobGas != nil {
		return true
	}
	return req.TxType != nil && *req.TxType == blobTxType
}
