package service

import (
	"context"

	"github.com/fleshka4/gas-estimator/internal/infra/ethrpc"
	"github.com/fleshka4/gas-estimator/internal/service/dto"
)

//go:generate mockgen -source=service.go -destination=mock/service.go -package=mock

// Service represents interface for business logic.
type Service interface {
	Estimate(ctx context.Context, req dto.GasEstimateRequest) (dto.GasEstimateResult, error)
}

// EstimatorService decides how each transaction's gas is estimated:
// statically for plain value transfers, through the upstream node for
// everything else.
type EstimatorService struct {
	cli ethrpc.Client

	staticEnabled bool
}

// NewEstimatorService creates EstimatorService. staticEnabled controls
// whether plain transfers are priced locally or forwarded to the node
// like every other category.
func NewEstimatorService(cli ethrpc.Client, staticEnabled bool) *EstimatorService {
	return &EstimatorService{
		cli: cli,

		staticEnabled: staticEnabled,
	}
}
