package http

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	"github.com/fleshka4/gas-estimator/internal/apperrors"
	"github.com/fleshka4/gas-estimator/internal/hexcodec"
	"github.com/fleshka4/gas-estimator/internal/transport/http/dto"
	"github.com/fleshka4/gas-estimator/internal/transport/http/validate"
)

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	req, err := validate.EstimateRequestValidate(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	res, err := s.est.Estimate(ctx, *req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, dto.EstimateGasResponse{
		GasLimit: hexcodec.EncodeQuantity(res.GasLimit),
		Method:   string(res.Method),
	})
}

// writeError maps a taxonomy error to its wire kind and HTTP status.
// Errors outside the taxonomy are reported as internal without their
// message.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	kind, status := errorKind(err)

	message := err.Error()
	if kind == "internal" {
		message = "internal error"
	}

	s.writeJSON(w, status, dto.ErrorResponse{
		Error: dto.ErrorObject{
			Kind:    kind,
			Message: message,
		},
	})
}

func errorKind(err error) (string, int) {
	switch {
	case errors.Is(err, apperrors.ErrBadRequest):
		return "bad_request", http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUpstreamRejected):
		return "upstream_rejected", http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrUpstreamUnavailable):
		return "upstream_unavailable", http.StatusBadGateway
	case errors.Is(err, apperrors.ErrPoolExhausted):
		return "pool_exhausted", http.StatusServiceUnavailable
	case errors.Is(err, apperrors.ErrUpstreamTimeout):
		return "upstream_timeout", http.StatusGatewayTimeout
	default:
		return "internal", http.StatusInternalServerError
	}
}
