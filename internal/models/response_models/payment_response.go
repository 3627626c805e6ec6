package response_models

// CreatePaymentIntentResponse keeps the exact field names the checkout
// pages expect from the serverless endpoints.
type CreatePaymentIntentResponse struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
}
