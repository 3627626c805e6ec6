package response_models

type StartSignupResponse struct {
	FlowID string `json:"flow_id"`
	Step   string `json:"step"`
}

type ProfessionalStepResponse struct {
	Step            string `json:"step"`
	UserID          string `json:"user_id"`
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
	MemberNumber    int    `json:"member_number"`
}

type CompleteSignupResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}
