package hexcodec

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
)

var (
	// ErrInvalidHex is returned when a string is not well-formed
	// 0x-prefixed hex (bad characters, missing prefix, odd length).
	ErrInvalidHex = errors.New("invalid hex")

	// ErrInvalidLength is returned when a well-formed hex string decodes
	// to the wrong number of bytes for the field.
	ErrInvalidLength = errors.New("invalid length")
)

// DecodeAddress decodes a 0x-prefixed hex string into a 20-byte address.
func DecodeAddress(s string) (common.Address, error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return common.Address{}, errors.Wrap(ErrInvalidHex, err.Error())
	}
	if len(b) != common.AddressLength {
		return common.Address{}, errors.Wrapf(ErrInvalidLength, "address must be %d bytes, got %d", common.AddressLength, len(b))
	}
	return common.BytesToAddress(b), nil
}

// DecodeHash decodes a 0x-prefixed hex string into a 32-byte hash.
func DecodeHash(s string) (common.Hash, error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return common.Hash{}, errors.Wrap(ErrInvalidHex, err.Error())
	}
	if len(b) != common.HashLength {
		return common.Hash{}, errors.Wrapf(ErrInvalidLength, "hash must be %d bytes, got %d", common.HashLength, len(b))
	}
	return common.BytesToHash(b), nil
}

// DecodeBytes decodes a 0x-prefixed hex string into a byte slice.
// "0x" decodes to an empty slice.
func DecodeBytes(s string) ([]byte, error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidHex, err.Error())
	}
	return b, nil
}

// DecodeQuantity decodes a 0x-prefixed integer in minimal hex form
// (no leading zero digits, per Ethereum quantity encoding) into a
// big.Int. Values wider than 256 bits are rejected.
func DecodeQuantity(s string) (*big.Int, error) {
	v, err := hexutil.DecodeBig(s)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidHex, err.Error())
	}
	return v, nil
}

// EncodeQuantity encodes an unsigned integer as minimal lowercase
// 0x-prefixed hex, e.g. 21000 -> "0x5208".
func EncodeQuantity(v uint64) string {
	return hexutil.EncodeUint64(v)
}
