package types

// DrawEntryRefundReason records why a draw entry was invalidated or refunded
type DrawEntryRefundReason string

const (
	DrawEntryRefundReasonMembershipCanceled DrawEntryRefundReason = "membership_canceled"
	DrawEntryRefundReasonDrawCanceled       DrawEntryRefundReason = "draw_canceled"
	DrawEntryRefundReasonCapExceeded        DrawEntryRefundReason = "cap_exceeded"
	DrawEntryRefundReasonManual             DrawEntryRefundReason = "manual"
)

// DrawCapUnlimited marks a draw with no entrant cap
const DrawCapUnlimited = -1
