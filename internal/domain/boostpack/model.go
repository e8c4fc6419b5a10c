package boostpack

import (
	ierr "github.com/Unicash-organization/unicash-entitlement/internal/errors"
	"github.com/Unicash-organization/unicash-entitlement/internal/types"
	"github.com/shopspring/decimal"
)

// BoostPack is a one-off purchasable bundle of boost credits. Boost credits
// never expire and survive membership state changes. Immutable catalog entry.
type BoostPack struct {
	ID      string          `db:"id" json:"id"`
	Name    string          `db:"name" json:"name"`
	Price   decimal.Decimal `db:"price" json:"price"`
	Credits int64           `db:"credits" json:"credits"`

	types.BaseModel
}

func (b *BoostPack) TableName() string {
	return "boost_packs"
}

func (b *BoostPack) Validate() error {
	if b.Price.IsNegative() {
		return ierr.NewError("boost pack price cannot be negative").
			WithHint("Boost pack price must be zero or positive").
			Mark(ierr.ErrValidation)
	}
	if b.Credits <= 0 {
		return ierr.NewError("boost pack must grant credits").
			WithHint("Boost pack credits must be positive").
			Mark(ierr.ErrValidation)
	}
	return nil
}
