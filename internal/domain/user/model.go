package user

import (
	"github.com/Unicash-organization/unicash-entitlement/internal/types"
)

// User represents a platform user with denormalized credit balances.
// The balances are cached projections of the credit ledger and are updated
// in the same transaction as every ledger append.
type User struct {
	ID                string `db:"id" json:"id"`
	Email             string `db:"email" json:"email"`
	MembershipCredits int64  `db:"membership_credits" json:"membership_credits"`
	BoostCredits      int64  `db:"boost_credits" json:"boost_credits"`

	// ProviderCustomerRef is the payment provider's customer id, used for
	// off-session renewal charges and billing portal sessions
	ProviderCustomerRef string `db:"provider_customer_ref" json:"provider_customer_ref,omitempty"`

	// IsLocked blocks all entitlement-consuming operations regardless of
	// membership state (fraud/chargeback flag)
	IsLocked bool `db:"is_locked" json:"is_locked"`

	types.BaseModel
}

func (u *User) TableName() string {
	return "users"
}

// TotalCredits returns the combined spendable balance across both pools
func (u *User) TotalCredits() int64 {
	return u.MembershipCredits + u.BoostCredits
}
