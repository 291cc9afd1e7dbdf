package ethrpc

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/fleshka4/gas-estimator/internal/apperrors"
)

// Pool owns a bounded set of reusable upstream connections. A leased
// connection belongs exclusively to the borrower until it is released
// or discarded; the slot semaphore keeps the live count at or below
// the configured size.
type Pool struct {
	dial           DialFunc
	acquireTimeout time.Duration

	idle  chan Conn
	slots chan struct{}
}

// NewPool creates a pool of at most size connections opened through
// dial. Connections are dialed lazily on first demand.
func NewPool(dial DialFunc, size int, acquireTimeout time.Duration) (*Pool, error) {
	if dial == nil {
		return nil, errors.New("dial func is nil")
	}
	if size <= 0 {
		return nil, errors.Errorf("pool size must be positive, got %d", size)
	}

	return &Pool{
		dial:           dial,
		acquireTimeout: acquireTimeout,
		idle:           make(chan Conn, size),
		slots:          make(chan struct{}, size),
	}, nil
}

// Acquire returns an idle connection if one exists, dials a new one if
// the pool is under its cap, and otherwise blocks until a connection is
// released, a slot is freed, or the acquisition timeout elapses.
func (p *Pool) Acquire(ctx context.Context) (Conn, error) {
	select {
	case conn := <-p.idle:
		return conn, nil
	default:
	}

	timer := time.NewTimer(p.acquireTimeout)
	defer timer.Stop()

	select {
	case conn := <-p.idle:
		return conn, nil
	case p.slots <- struct{}{}:
		conn, err := p.dial(ctx)
		if err != nil {
			<-p.slots
			return nil, errors.Wrap(apperrors.ErrUpstreamUnavailable, err.Error())
		}
		return conn, nil
	case <-timer.C:
		return nil, errors.Wrapf(apperrors.ErrPoolExhausted, "no connection available within %s", p.acquireTimeout)
	case <-ctx.Done():
		return nil, errors.Wrap(apperrors.ErrPoolExhausted, ctx.Err().Error())
	}
}

// Release returns a healthy connection to the idle set.
func (p *Pool) Release(conn Conn) {
	select {
	case p.idle <- conn:
	default:
		// release without a matching acquire; drop the connection.
		conn.Close()
	}
}

// Discard removes a failed connection from the pool. Its slot becomes
// free, so a later Acquire may dial a replacement.
func (p *Pool) Discard(conn Conn) {
	conn.Close()
	select {
	case <-p.slots:
	default:
	}
}

// Live reports how many connections the pool currently has open,
// leased or idle.
func (p *Pool) Live() int {
	return len(p.slots)
}

// Close closes all idle connections. Leased connections are closed by
// their borrowers via Release or Discard.
func (p *Pool) Close() {
	for {
		select {
		case conn := <-p.idle:
			conn.Close()
		default:
			return
		}
	}
}
