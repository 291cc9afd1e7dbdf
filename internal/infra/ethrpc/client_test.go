package ethrpc

import (
	"context"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fleshka4/gas-estimator/internal/apperrors"
	"github.com/fleshka4/gas-estimator/internal/infra/ethrpc/mock"
)

// nodeError mimics a node-reported JSON-RPC error, which go-ethereum
// surfaces through the rpc.Error interface.
type nodeError struct {
	msg string
}

func (e *nodeError) Error() string  { return e.msg }
func (e *nodeError) ErrorCode() int { return 3 }

func queueDial(conns ...Conn) DialFunc {
	var (
		mu sync.Mutex
		i  int
	)
	return func(context.Context) (Conn, error) {
		mu.Lock()
		defer mu.Unlock()
		if i >= len(conns) {
			return nil, errors.New("no connections left to dial")
		}
		conn := conns[i]
		i++
		return conn, nil
	}
}

func newTestClient(t *testing.T, callTimeout time.Duration, conns ...Conn) (Client, *Pool) {
	t.Helper()

	pool, err := NewPool(queueDial(conns...), len(conns), 50*time.Millisecond)
	require.NoError(t, err)

	return newClientWithPool(pool, callTimeout), pool
}

func TestEstimateGasSuccess(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	conn := mock.NewMockConn(ctrl)
	conn.EXPECT().
		CallContext(gomock.Any(), gomock.Any(), "eth_estimateGas", gomock.Any()).
		DoAndReturn(func(_ context.Context, result any, _ string, _ ...any) error {
			*(result.(*hexutil.Uint64)) = hexutil.Uint64(53000)
			return nil
		})

	client, pool := newTestClient(t, time.Second, conn)

	to := common.HexToAddress("0x0000000000000000000000000000000000000002")
	gasLimit, err := client.EstimateGas(context.Background(), CallArgs{
		From: common.HexToAddress("0x0000000000000000000000000000000000000001"),
		To:   &to,
		Data: []byte{0x01},
	})
	require.NoError(t, err)
	require.Equal(t, uint64(53000), gasLimit)

	// the healthy connection went back to the pool.
	require.Equal(t, 1, pool.Live())
	again, err := pool.Acquire(context.Background())
	require.NoError(t, err)
	require.Same(t, Conn(conn), again)
}

func TestEstimateGasCallSerialization(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	from := common.HexToAddress("0x0000000000000000000000000000000000000001")
	to := common.HexToAddress("0x0000000000000000000000000000000000000002")

	t.Run("full call", func(t *testing.T) {
		conn := mock.NewMockConn(ctrl)
		conn.EXPECT().
			CallContext(gomock.Any(), gomock.Any(), "eth_estimateGas", gomock.Any()).
			DoAndReturn(func(_ context.Context, result any, _ string, args ...any) error {
				require.Len(t, args, 1)
				arg, ok := args[0].(map[string]interface{})
				require.True(t, ok)

				require.Equal(t, from, arg["from"])
				require.Equal(t, to, arg["to"])
				require.Equal(t, (*hexutil.Big)(big.NewInt(1)), arg["value"])
				require.Equal(t, hexutil.Bytes{0xa9}, arg["input"])

				*(result.(*hexutil.Uint64)) = hexutil.Uint64(30000)
				return nil
			})

		client, _ := newTestClient(t, time.Second, conn)

		_, err := client.EstimateGas(context.Background(), CallArgs{
			From:  from,
			To:    &to,
			Value: big.NewInt(1),
			Data:  []byte{0xa9},
		})
		require.NoError(t, err)
	})

	t.Run("absent optional fields are omitted", func(t *testing.T) {
		conn := mock.NewMockConn(ctrl)
		conn.EXPECT().
			CallContext(gomock.Any(), gomock.Any(), "eth_estimateGas", gomock.Any()).
			DoAndReturn(func(_ context.Context, result any, _ string, args ...any) error {
				arg, ok := args[0].(map[string]interface{})
				require.True(t, ok)

				require.Contains(t, arg, "from")
				require.NotContains(t, arg, "to")
				require.NotContains(t, arg, "value")
				require.NotContains(t, arg, "input")
				require.NotContains(t, arg, "blobVersionedHashes")
				require.NotContains(t, arg, "maxFeePerBlobGas")

				*(result.(*hexutil.Uint64)) = hexutil.Uint64(55000)
				return nil
			})

		client, _ := newTestClient(t, time.Second, conn)

		_, err := client.EstimateGas(context.Background(), CallArgs{From: from})
		require.NoError(t, err)
	})

	t.Run("zero value is omitted", func(t *testing.T) {
		conn := mock.NewMockConn(ctrl)
		conn.EXPECT().
			CallContext(gomock.Any(), gomock.Any(), "eth_estimateGas", gomock.Any()).
			DoAndReturn(func(_ context.Context, result any, _ string, args ...any) error {
				arg, ok := args[0].(map[string]interface{})
				require.True(t, ok)
				require.NotContains(t, arg, "value")

				*(result.(*hexutil.Uint64)) = hexutil.Uint64(21000)
				return nil
			})

		client, _ := newTestClient(t, time.Second, conn)

		_, err := client.EstimateGas(context.Background(), CallArgs{
			From:  from,
			To:    &to,
			Value: big.NewInt(0),
		})
		require.NoError(t, err)
	})

	t.Run("blob fields are forwarded", func(t *testing.T) {
		hash := common.HexToHash("0x0100000000000000000000000000000000000000000000000000000000000001")

		conn := mock.NewMockConn(ctrl)
		conn.EXPECT().
			CallContext(gomock.Any(), gomock.Any(), "eth_estimateGas", gomock.Any()).
			DoAndReturn(func(_ context.Context, result any, _ string, args ...any) error {
				arg, ok := args[0].(map[string]interface{})
				require.True(t, ok)
				require.Equal(t, []common.Hash{hash}, arg["blobVersionedHashes"])
				require.Equal(t, (*hexutil.Big)(big.NewInt(7)), arg["maxFeePerBlobGas"])

				*(result.(*hexutil.Uint64)) = hexutil.Uint64(21000)
				return nil
			})

		client, _ := newTestClient(t, time.Second, conn)

		_, err := client.EstimateGas(context.Background(), CallArgs{
			From:             from,
			To:               &to,
			BlobHashes:       []common.Hash{hash},
			MaxFeePerBlobGas: big.NewInt(7),
		})
		require.NoError(t, err)
	})
}

func TestEstimateGasRejectedNotRetried(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	conn := mock.NewMockConn(ctrl)
	conn.EXPECT().
		CallContext(gomock.Any(), gomock.Any(), "eth_estimateGas", gomock.Any()).
		Return(&nodeError{msg: "execution reverted: insufficient balance"}).
		Times(1)

	client, pool := newTestClient(t, time.Second, conn)

	_, err := client.EstimateGas(context.Background(), CallArgs{
		From: common.HexToAddress("0x0000000000000000000000000000000000000001"),
	})
	require.ErrorIs(t, err, apperrors.ErrUpstreamRejected)
	require.Contains(t, err.Error(), "execution reverted: insufficient balance")

	// the connection is healthy and stays pooled.
	require.Equal(t, 1, pool.Live())
}

func TestEstimateGasTransportFailureRetriedOnce(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	first := mock.NewMockConn(ctrl)
	first.EXPECT().
		CallContext(gomock.Any(), gomock.Any(), "eth_estimateGas", gomock.Any()).
		Return(errors.New("connection reset by peer"))
	first.EXPECT().Close()

	second := mock.NewMockConn(ctrl)
	second.EXPECT().
		CallContext(gomock.Any(), gomock.Any(), "eth_estimateGas", gomock.Any()).
		Return(errors.New("connection reset by peer"))
	second.EXPECT().Close()

	client, pool := newTestClient(t, time.Second, first, second)

	_, err := client.EstimateGas(context.Background(), CallArgs{
		From: common.HexToAddress("0x0000000000000000000000000000000000000001"),
	})
	require.ErrorIs(t, err, apperrors.ErrUpstreamUnavailable)

	// both failed connections were discarded, not returned.
	require.Equal(t, 0, pool.Live())
}

func TestEstimateGasRecoversOnRetry(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	first := mock.NewMockConn(ctrl)
	first.EXPECT().
		CallContext(gomock.Any(), gomock.Any(), "eth_estimateGas", gomock.Any()).
		Return(errors.New("broken pipe"))
	first.EXPECT().Close()

	second := mock.NewMockConn(ctrl)
	second.EXPECT().
		CallContext(gomock.Any(), gomock.Any(), "eth_estimateGas", gomock.Any()).
		DoAndReturn(func(_ context.Context, result any, _ string, _ ...any) error {
			*(result.(*hexutil.Uint64)) = hexutil.Uint64(64000)
			return nil
		})

	client, pool := newTestClient(t, time.Second, first, second)

	gasLimit, err := client.EstimateGas(context.Background(), CallArgs{
		From: common.HexToAddress("0x0000000000000000000000000000000000000001"),
	})
	require.NoError(t, err)
	require.Equal(t, uint64(64000), gasLimit)
	require.Equal(t, 1, pool.Live())
}

func TestEstimateGasTimeout(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hang := func(ctx context.Context, _ any, _ string, _ ...any) error {
		<-ctx.Done()
		return ctx.Err()
	}

	first := mock.NewMockConn(ctrl)
	first.EXPECT().
		CallContext(gomock.Any(), gomock.Any(), "eth_estimateGas", gomock.Any()).
		DoAndReturn(hang).
		Times(1)
	first.EXPECT().Close()

	second := mock.NewMockConn(ctrl)
	second.EXPECT().
		CallContext(gomock.Any(), gomock.Any(), "eth_estimateGas", gomock.Any()).
		DoAndReturn(hang).
		Times(1)
	second.EXPECT().Close()

	client, pool := newTestClient(t, 10*time.Millisecond, first, second)

	_, err := client.EstimateGas(context.Background(), CallArgs{
		From: common.HexToAddress("0x0000000000000000000000000000000000000001"),
	})
	require.ErrorIs(t, err, apperrors.ErrUpstreamTimeout)

	// the timed-out connections were discarded, not returned.
	require.Equal(t, 0, pool.Live())
}

func TestEstimateGasPoolExhaustedNotRetried(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	conn := mock.NewMockConn(ctrl)

	pool, err := NewPool(queueDial(conn), 1, 10*time.Millisecond)
	require.NoError(t, err)
	client := newClientWithPool(pool, time.Second)

	// hold the only connection so acquisition must time out.
	held, err := pool.Acquire(context.Background())
	require.NoError(t, err)
	defer pool.Release(held)

	_, err = client.EstimateGas(context.Background(), CallArgs{
		From: common.HexToAddress("0x0000000000000000000000000000000000000001"),
	})
	require.ErrorIs(t, err, apperrors.ErrPoolExhausted)

	// the pool error is returned as-is, without extra annotation.
	require.EqualError(t, err, "no connection available within 10ms: connection pool exhausted")
}
