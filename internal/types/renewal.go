package types

import (
	ierr "github.com/Unicash-organization/unicash-entitlement/internal/errors"
	"github.com/samber/lo"
)

// RenewalStatus is the terminal-or-pending state of a billing period renewal attempt
type RenewalStatus string

const (
	RenewalStatusPending   RenewalStatus = "pending"
	RenewalStatusSucceeded RenewalStatus = "succeeded"
	RenewalStatusFailed    RenewalStatus = "failed"
)

func (s RenewalStatus) String() string {
	return string(s)
}

func (s RenewalStatus) Validate() error {
	allowed := []RenewalStatus{RenewalStatusPending, RenewalStatusSucceeded, RenewalStatusFailed}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid renewal status").
			WithHintf("Unknown renewal status: %s", s).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// IsTerminal reports whether the renewal record may no longer be mutated
func (s RenewalStatus) IsTerminal() bool {
	return s == RenewalStatusSucceeded || s == RenewalStatusFailed
}
