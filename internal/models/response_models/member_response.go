package response_models

type MemberStatusResponse struct {
	UserID             string `json:"user_id"`
	PaymentStatus      string `json:"payment_status"`
	MemberNumber       int    `json:"member_number"`
	PaymentAmount      int64  `json:"payment_amount"`
	PaymentCompletedAt *int64 `json:"payment_completed_at,omitempty"`
}
