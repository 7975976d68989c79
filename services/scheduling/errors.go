package scheduling

import "errors"

// Construction errors. A missing scorer is fatal by design: a silently
// absent scorer would systematically mis-rank slots, so the engine
// refuses to exist without one.
var (
	ErrScorerRequired         = errors.New("scheduling: scorer capability is required")
	ErrProviderSourceRequired = errors.New("scheduling: provider source is required")
	ErrBookingSourceRequired  = errors.New("scheduling: booking source is required")
)
