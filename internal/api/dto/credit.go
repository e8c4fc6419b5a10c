package dto

import (
	"time"

	"github.com/Unicash-organization/unicash-entitlement/internal/domain/credit"
	"github.com/Unicash-organization/unicash-entitlement/internal/types"
)

// CreditBalanceResponse reports both credit pools and the combined total
// used for draw entry eligibility checks.
type CreditBalanceResponse struct {
	UserID            string `json:"user_id"`
	MembershipCredits int64  `json:"membership_credits"`
	BoostCredits      int64  `json:"boost_credits"`
	TotalCredits      int64  `json:"total_credits"`
}

// CreditLedgerEntryResponse is one immutable ledger line
type CreditLedgerEntryResponse struct {
	ID           string             `json:"id"`
	Class        types.CreditClass  `json:"class"`
	Amount       int64              `json:"amount"`
	Reason       types.CreditReason `json:"reason"`
	BalanceAfter int64              `json:"balance_after"`
	PeriodKey    string             `json:"period_key,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
}

// NewCreditLedgerEntryResponse builds the response from the domain entry
func NewCreditLedgerEntryResponse(e *credit.LedgerEntry) *CreditLedgerEntryResponse {
	if e == nil {
		return nil
	}
	return &CreditLedgerEntryResponse{
		ID:           e.ID,
		Class:        e.Class,
		Amount:       e.Amount,
		Reason:       e.Reason,
		BalanceAfter: e.BalanceAfter,
		PeriodKey:    e.PeriodKey,
		CreatedAt:    e.CreatedAt,
	}
}
