package dto

import (
	"time"

	"github.com/Unicash-organization/unicash-entitlement/internal/domain/draw"
	"github.com/Unicash-organization/unicash-entitlement/internal/types"
)

// DrawEntryResponse confirms an accepted draw entry
type DrawEntryResponse struct {
	ID           string            `json:"id"`
	UserID       string            `json:"user_id"`
	DrawID       string            `json:"draw_id"`
	CreditsSpent int64             `json:"credits_spent"`
	Source       types.CreditClass `json:"source"`
	OrderNo      string            `json:"order_no"`
	CreatedAt    time.Time         `json:"created_at"`
}

// NewDrawEntryResponse builds the response from the domain entry
func NewDrawEntryResponse(e *draw.Entry) *DrawEntryResponse {
	if e == nil {
		return nil
	}
	return &DrawEntryResponse{
		ID:           e.ID,
		UserID:       e.UserID,
		DrawID:       e.DrawID,
		CreditsSpent: e.CreditsSpent,
		Source:       e.Source,
		OrderNo:      e.OrderNo,
		CreatedAt:    e.CreatedAt,
	}
}

// DrawResponse is the public view of a draw
type DrawResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	RequiresMembership bool      `json:"requires_membership"`
	CostPerEntry       int64     `json:"cost_per_entry"`
	Cap                int       `json:"cap"`
	EntrantCount       int       `json:"entrant_count"`
	ClosesAt           time.Time `json:"closes_at"`
}

// NewDrawResponse builds the response from the domain draw
func NewDrawResponse(d *draw.Draw) *DrawResponse {
	if d == nil {
		return nil
	}
	return &DrawResponse{
		ID:                 d.ID,
		Name:               d.Name,
		RequiresMembership: d.RequiresMembership,
		CostPerEntry:       d.CostPerEntry,
		Cap:                d.Cap,
		EntrantCount:       d.EntrantCount,
		ClosesAt:           d.ClosesAt,
	}
}
