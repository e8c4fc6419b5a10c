package draw

import (
	"time"

	"github.com/Unicash-organization/unicash-entitlement/internal/types"
)

// Draw is a capped-entry giveaway. A draw may require an active membership
// to enter, gated by RequiresMembership.
type Draw struct {
	ID                 string    `db:"id" json:"id"`
	Name               string    `db:"name" json:"name"`
	RequiresMembership bool      `db:"requires_membership" json:"requires_membership"`
	CostPerEntry       int64     `db:"cost_per_entry" json:"cost_per_entry"`
	Cap                int       `db:"cap" json:"cap"` // -1 for unlimited
	EntrantCount       int       `db:"entrant_count" json:"entrant_count"`
	ClosesAt           time.Time `db:"closes_at" json:"closes_at"`

	types.BaseModel
}

func (d *Draw) TableName() string {
	return "draws"
}

// IsClosed reports whether the draw no longer accepts entries by time
func (d *Draw) IsClosed(now time.Time) bool {
	return now.After(d.ClosesAt)
}

// IsSoldOut reports whether the draw has reached its entrant cap
func (d *Draw) IsSoldOut() bool {
	return d.Cap != types.DrawCapUnlimited && d.EntrantCount >= d.Cap
}
