package atf

import "errors"

// Sentinel error kinds. Callers should use errors.Is against these rather
// than comparing error values directly, since the core usually wraps them
// with additional context via fmt.Errorf("%w: ...", ...) (ErrBigIntOverflow
// and ErrNarrow are returned unwrapped).
var (
	// ErrOutOfRange is returned when an index or coordinate addresses a
	// configuration outside the bounds of a Range, Tree, or SearchSpace.
	ErrOutOfRange = errors.New("atf: out of range")

	// ErrProtocol is returned when the stepping API (Tuner.GetConfiguration /
	// Tuner.ReportCost) is misused: calling either out of the required
	// alternation, or mixing stepping calls with Tune.
	ErrProtocol = errors.New("atf: protocol violation")

	// ErrInvalidConfig marks a configuration whose cost callable failed.
	// It is recorded and reported to the technique as the sentinel maximum
	// cost; it is not fatal unless the engine was configured to abort on
	// error.
	ErrInvalidConfig = errors.New("atf: invalid configuration")

	// ErrBigIntOverflow is returned when narrowing a BigInt to a fixed-width
	// target would lose information.
	ErrBigIntOverflow = errors.New("atf: big integer overflow")

	// ErrNarrow is returned when a Value cannot be narrowed to a requested
	// numeric representation without loss.
	ErrNarrow = errors.New("atf: value cannot be narrowed losslessly")

	// ErrInternal marks a programmer error: a precondition the caller was
	// responsible for upholding was violated (e.g. tree construction
	// producing zero leaves). These are not recoverable.
	ErrInternal = errors.New("atf: internal error")
)
