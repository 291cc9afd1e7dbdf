package validate

import (
	"encoding/json"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/fleshka4/gas-estimator/internal/apperrors"
	"github.com/fleshka4/gas-estimator/internal/hexcodec"
	svcdto "github.com/fleshka4/gas-estimator/internal/service/dto"
	"github.com/fleshka4/gas-estimator/internal/transport/http/dto"
)

// EstimateRequestValidate decodes and validates the estimate-gas JSON
// body and returns the service-level request. Every failure wraps
// apperrors.ErrBadRequest; the codec's reason is kept for the message.
func EstimateRequestValidate(r *http.Request) (*svcdto.GasEstimateRequest, error) {
	var wire dto.EstimateGasRequest
	if err := json.NewDecoder(r.Body).Decode(&wire); err != nil {
		return nil, errors.Wrapf(apperrors.ErrBadRequest, "invalid json body: %v", err)
	}

	if wire.From == "" {
		return nil, errors.Wrap(apperrors.ErrBadRequest, "from is required")
	}
	from, err := hexcodec.DecodeAddress(wire.From)
	if err != nil {
		return nil, errors.Wrapf(apperrors.ErrBadRequest, "from: %v", err)
	}

	req := &svcdto.GasEstimateRequest{From: from}

	if wire.To != "" {
		to, err := hexcodec.DecodeAddress(wire.To)
		if err != nil {
			return nil, errors.Wrapf(apperrors.ErrBadRequest, "to: %v", err)
		}
		req.To = &to
	}

	if wire.Value != "" {
		value, err := hexcodec.DecodeQuantity(wire.Value)
		if err != nil {
			return nil, errors.Wrapf(apperrors.ErrBadRequest, "value: %v", err)
		}
		req.Value = value
	}

	if wire.Data != "" {
		data, err := hexcodec.DecodeBytes(wire.Data)
		if err != nil {
			return nil, errors.Wrapf(apperrors.ErrBadRequest, "data: %v", err)
		}
		req.Data = data
	}

	if len(wire.BlobVersionedHashes) > 0 {
		hashes := make([]common.Hash, 0, len(wire.BlobVersionedHashes))
		for _, h := range wire.BlobVersionedHashes {
			hash, err := hexcodec.DecodeHash(h)
			if err != nil {
				return nil, errors.Wrapf(apperrors.ErrBadRequest, "blobVersionedHashes: %v", err)
			}
			hashes = append(hashes, hash)
		}
		req.BlobHashes = hashes
	}

	if wire.MaxFeePerBlobGas != "" {
		fee, err := hexcodec.DecodeQuantity(wire.MaxFeePerBlobGas)
		if err != nil {
			return nil, errors.Wrapf(apperrors.ErrBadRequest, "maxFeePerBlobGas: %v", err)
		}
		req.MaxFeePerBlobGas = fee
	}

	if wire.Type != "" {
		txType, err := hexcodec.DecodeQuantity(wire.Type)
		if err != nil {
			return nil, errors.Wrapf(apperrors.ErrBadRequest, "type: %v", err)
		}
		if !txType.IsUint64() || txType.Uint64() > 0xff {
			return nil, errors.Wrap(apperrors.ErrBadRequest, "type must fit one byte")
		}
		t := uint8(txType.Uint64())
		req.TxType = &t
	}

	return req, nil
}
