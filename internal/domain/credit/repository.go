package credit

import (
	"context"

	"github.com/Unicash-organization/unicash-entitlement/internal/types"
)

// Repository defines the interface for credit ledger persistence. The ledger
// is append-only; entries are never updated or deleted.
type Repository interface {
	CreateEntry(ctx context.Context, e *LedgerEntry) error
	GetEntryByIdempotencyKey(ctx context.Context, key string) (*LedgerEntry, error)
	ListByUser(ctx context.Context, userID string) ([]*LedgerEntry, error)
	ListByUserAndClass(ctx context.Context, userID string, class types.CreditClass) ([]*LedgerEntry, error)
}
