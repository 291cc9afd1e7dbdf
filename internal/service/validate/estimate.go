package validate

import (
	"github.com/pkg/errors"

	"github.com/fleshka4/gas-estimator/internal/apperrors"
	"github.com/fleshka4/gas-estimator/internal/service/dto"
)

const maxValueBits = 256

// EstimateRequestValidate validates business logic request invariants.
// Syntactic hex validity is the transport codec's job; this layer
// guards the numeric bounds the protocol imposes.
func EstimateRequestValidate(req dto.GasEstimateRequest) error {
	if req.Value != nil {
		if req.Value.Sign() < 0 {
			return errors.Wrap(apperrors.ErrBadRequest, "value cannot be negative")
		}
		if req.Value.BitLen() > maxValueBits {
			return errors.Wrapf(apperrors.ErrBadRequest, "value exceeds %d bits", maxValueBits)
		}
	}

	if req.MaxFeePerBlobGas != nil && req.MaxFeePerBlobGas.Sign() < 0 {
		return errors.Wrap(apperrors.ErrBadRequest, "maxFeePerBlobGas cannot be negative")
	}

	return nil
}
