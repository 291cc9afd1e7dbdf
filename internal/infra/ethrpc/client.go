package ethrpc

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/fleshka4/gas-estimator/internal/apperrors"
)

// one retry on a transient failure, with a freshly acquired connection.
const maxAttempts = 2

// CallArgs is the transaction shape sent to eth_estimateGas. Absent
// optional fields are omitted from the wire call rather than sent as
// zero-valued placeholders.
type CallArgs struct {
	From             common.Address
	To               *common.Address
	Value            *big.Int
	Data             []byte
	BlobHashes       []common.Hash
	MaxFeePerBlobGas *big.Int
}

func (a CallArgs) rpcArgs() map[string]interface{} {
	arg := map[string]interface{}{
		"from": a.From,
	}
	if a.To != nil {
		arg["to"] = *a.To
	}
	if a.Value != nil && a.Value.Sign() != 0 {
		arg["value"] = (*hexutil.Big)(a.Value)
	}
	if len(a.Data) > 0 {
		arg["input"] = hexutil.Bytes(a.Data)
	}
	if len(a.BlobHashes) > 0 {
		arg["blobVersionedHashes"] = a.BlobHashes
	}
	if a.MaxFeePerBlobGas != nil {
		arg["maxFeePerBlobGas"] = (*hexutil.Big)(a.MaxFeePerBlobGas)
	}
	return arg
}

//go:generate mockgen -source=client.go -destination=clientmock/client.go -package=clientmock

// Client asks the upstream node how much gas a transaction would
// consume.
type Client interface {
	// EstimateGas runs eth_estimateGas for the given call and returns
	// the gas-unit figure.
	EstimateGas(ctx context.Context, call CallArgs) (uint64, error)

	// Close releases the pooled connections.
	Close()
}

type clientImpl struct {
	pool *Pool

	callTimeout time.Duration
}

// NewClient creates a gas client backed by a connection pool to the
// given JSON-RPC endpoint.
func NewClient(endpoint string, poolSize int, callTimeout, acquireTimeout time.Duration) (Client, error) {
	pool, err := NewPool(dialEndpoint(endpoint), poolSize, acquireTimeout)
	if err != nil {
		return nil, errors.Wrap(err, "ethrpc.NewPool")
	}
	return newClientWithPool(pool, callTimeout), nil
}

func newClientWithPool(pool *Pool, callTimeout time.Duration) Client {
	return &clientImpl{
		pool: pool,

		callTimeout: callTimeout,
	}
}

// EstimateGas acquires a pooled connection and runs eth_estimateGas.
// Node-side rejections are returned as ErrUpstreamRejected without
// retry; a timed-out or transport-broken attempt discards its
// connection and is retried once on a fresh one.
func (c *clientImpl) EstimateGas(ctx context.Context, call CallArgs) (uint64, error) {
	arg := call.rpcArgs()

	var (
		attemptErrs error
		lastErr     error
	)
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return 0, errors.Wrap(apperrors.ErrUpstreamTimeout, err.Error())
		}

		gasLimit, err := c.estimateOnce(ctx, arg)
		if err == nil {
			return gasLimit, nil
		}
		if !retryable(err) {
			return 0, err
		}
		lastErr = err
		attemptErrs = multierr.Append(attemptErrs, err)
	}

	if errors.Is(lastErr, apperrors.ErrUpstreamTimeout) {
		return 0, errors.Wrapf(apperrors.ErrUpstreamTimeout, "%d attempts failed: %v", maxAttempts, attemptErrs)
	}
	return 0, errors.Wrapf(apperrors.ErrUpstreamUnavailable, "%d attempts failed: %v", maxAttempts, attemptErrs)
}

func (c *clientImpl) estimateOnce(ctx context.Context, arg map[string]interface{}) (uint64, error) {
	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return 0, err
	}

	ctxCall, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	var gasLimit hexutil.Uint64
	if err := conn.CallContext(ctxCall, &gasLimit, "eth_estimateGas", arg); err != nil {
		var nodeErr rpc.Error
		if errors.As(err, &nodeErr) {
			// Deterministic node-side rejection; the connection itself
			// is healthy.
			c.pool.Release(conn)
			return 0, errors.Wrap(apperrors.ErrUpstreamRejected, nodeErr.Error())
		}

		c.pool.Discard(conn)
		if ctxCall.Err() != nil {
			return 0, errors.Wrap(apperrors.ErrUpstreamTimeout, err.Error())
		}
		return 0, errors.Wrap(apperrors.ErrUpstreamUnavailable, err.Error())
	}

	c.pool.Release(conn)
	return uint64(gasLimit), nil
}

func retryable(err error) bool {
	return errors.Is(err, apperrors.ErrUpstreamTimeout) ||
		errors.Is(err, apperrors.ErrUpstreamUnavailable)
}

// Close shuts the underlying pool down.
func (c *clientImpl) Close() {
	c.pool.Close()
}
