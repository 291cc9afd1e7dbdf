package ethrpc

import (
	"context"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"
)

//go:generate mockgen -source=conn.go -destination=mock/conn.go -package=mock

// Conn is one upstream JSON-RPC session. *rpc.Client satisfies it; the
// narrow interface keeps the pool and client mockable.
type Conn interface {
	CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error
	Close()
}

// DialFunc opens a new upstream session. The pool calls it lazily, up
// to its size cap.
type DialFunc func(ctx context.Context) (Conn, error)

func dialEndpoint(endpoint string) DialFunc {
	return func(ctx context.Context) (Conn, error) {
		c, err := rpc.DialContext(ctx, endpoint)
		if err != nil {
			return nil, errors.Wrap(err, "rpc.DialContext")
		}
		return c, nil
	}
}
