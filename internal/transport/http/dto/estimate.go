package dto

// EstimateGasRequest is the JSON body of POST /api/estimate-gas. All
// fields are 0x-prefixed hex strings; only from is required. An absent
// to signals contract creation. The blob fields are EIP-4844
// extensions.
type EstimateGasRequest struct {
	From                string   `json:"from"`
	To                  string   `json:"to,omitempty"`
	Value               string   `json:"value,omitempty"`
	Data                string   `json:"data,omitempty"`
	BlobVersionedHashes []string `json:"blobVersionedHashes,omitempty"`
	MaxFeePerBlobGas    string   `json:"maxFeePerBlobGas,omitempty"`
	Type                string   `json:"type,omitempty"`
}

// EstimateGasResponse is the success body: the gas-unit figure in
// minimal hex and the method that produced it.
type EstimateGasResponse struct {
	GasLimit string `json:"gas_limit"`
	Method   string `json:"method"`
}

// ErrorResponse is the failure body.
type ErrorResponse struct {
	Error ErrorObject `json:"error"`
}

// ErrorObject carries a machine-readable kind from the error taxonomy
// and a human-readable message.
type ErrorObject struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// HealthResponse is the GET /health body.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
