package domain

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// IDGenerator produces task ids.
type IDGenerator interface {
	NewID() string
}

// ULIDGenerator issues lexically sortable ids. The default entropy source is
// monotonic, so ids created within the same millisecond still differ and
// keep creation order.
type ULIDGenerator struct {
	Now func() time.Time
}

// NewID returns a new ULID string.
func (g ULIDGenerator) NewID() string {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	return ulid.MustNew(ulid.Timestamp(now()), ulid.DefaultEntropy()).String()
}
