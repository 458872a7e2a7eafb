// Package deadline implements the timeout budget shared by every blocking
// transport operation.
//
// A logical operation (connect, read, write) is given one timeout. The
// operation may wait for socket readiness many times before it completes;
// the Budget decides how long each of those waits may last.
//
// # Accounting Modes
//
// Two modes are available:
//   - ModeElapsed: the timeout bounds the whole logical call. Every wait
//     receives what is left of the budget, recomputed from the clock.
//   - ModePerWait: the full timeout is applied to every individual wait, so
//     the cumulative time of one call may exceed the nominal timeout.
//
// A timeout of zero or less means waits are unbounded.
//
// # Expiry
//
// Once the budget is spent, Next fails with the timeout error matching the
// kind of wait (ErrConnectTimeout, ErrReadTimeout, ErrWriteTimeout). Expiry
// is terminal: the budget never recovers.
package deadline
