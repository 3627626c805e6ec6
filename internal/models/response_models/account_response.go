package response_models

type LoginResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	UserType string `json:"user_type"`
}

type ProfileResponse struct {
	UserID              string  `json:"user_id"`
	FullName            string  `json:"full_name"`
	UserType            string  `json:"user_type"`
	Phone               *string `json:"phone,omitempty"`
	CompanyName         *string `json:"company_name,omitempty"`
	CreciNumber         *string `json:"creci_number,omitempty"`
	CreciUf             *string `json:"creci_uf,omitempty"`
	OnboardingCompleted bool    `json:"onboarding_completed"`

	// Active subscription, if any.
	Plan               string `json:"plan,omitempty"`
	SubscriptionEndsAt int64  `json:"subscription_ends_at,omitempty"`
}
