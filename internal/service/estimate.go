package service

import (
	"context"

	"github.com/fleshka4/gas-estimator/internal/classify"
	"github.com/fleshka4/gas-estimator/internal/gas"
	"github.com/fleshka4/gas-estimator/internal/infra/ethrpc"
	"github.com/fleshka4/gas-estimator/internal/service/dto"
	"github.com/fleshka4/gas-estimator/internal/service/validate"
)

// Estimate validates the request, classifies the transaction shape and
// dispatches it to the static path or the upstream node.
//
// Only a plain value transfer has a protocol-fixed cost; with static
// estimation enabled it is answered locally with the intrinsic 21000.
// Contract calls, creations and blob transactions carry data-dependent
// execution cost, so they always go to the node. Downstream failures
// keep their taxonomy kind on the way up.
func (s *EstimatorService) Estimate(ctx context.Context, req dto.GasEstimateRequest) (dto.GasEstimateResult, error) {
	if err := validate.EstimateRequestValidate(req); err != nil {
		return dto.GasEstimateResult{}, err
	}

	switch category := classify.Classify(req); category {
	case classify.SimpleTransfer:
		if s.staticEnabled {
			return dto.GasEstimateResult{
				GasLimit: gas.Transfer(),
				Method:   dto.MethodStatic,
			}, nil
		}
	case classify.ContractCall, classify.ContractCreation, classify.BlobTransaction:
	}

	gasLimit, err := s.cli.EstimateGas(ctx, callArgs(req))
	if err != nil {
		return dto.GasEstimateResult{}, err
	}

	// No valid transaction can run on less than its intrinsic cost, so
	// an anomalous node answer below it is raised to the floor.
	if floor := gas.Intrinsic(req.Data, req.To == nil); gasLimit < floor {
		gasLimit = floor
	}

	return dto.GasEstimateResult{
		GasLimit: gasLimit,
		Method:   dto.MethodRPC,
	}, nil
}

func callArgs(req dto.GasEstimateRequest) ethrpc.CallArgs {
	return ethrpc.CallArgs{
		From:             req.From,
		To:               req.To,
		Value:            req.Value,
		Data:             req.Data,
		BlobHashes:       req.BlobHashes,
		MaxFeePerBlobGas: req.MaxFeePerBlobGas,
	}
}
