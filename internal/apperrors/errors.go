package apperrors

import "github.com/pkg/errors"

var (
	// ErrBadRequest is returned when the request is malformed or fails
	// validation. The caller's fault; retrying does not help.
	ErrBadRequest = errors.New("bad request")

	// ErrPoolExhausted is returned when no upstream connection became
	// available within the acquisition timeout. Transient; the caller
	// may retry.
	ErrPoolExhausted = errors.New("connection pool exhausted")

	// ErrUpstreamTimeout is returned when the upstream node did not
	// answer within the per-call timeout, after one internal retry.
	ErrUpstreamTimeout = errors.New("upstream timeout")

	// ErrUpstreamUnavailable is returned on a transport-level failure
	// talking to the upstream node, after one internal retry.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrUpstreamRejected is returned when the node itself rejected the
	// estimation (execution revert, simulation failure). Deterministic;
	// never retried. The node's message is preserved in the wrap chain.
	ErrUpstreamRejected = errors.New("upstream rejected")
)
