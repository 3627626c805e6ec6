package request_models

// CreatePaymentIntentRequest mirrors the body the checkout pages send to
// /api/stripe/create-payment-intent and /api/stripe/create-test-payment.
type CreatePaymentIntentRequest struct {
	FullName         string `json:"fullName"`
	CPF              string `json:"cpf"`
	Phone            string `json:"phone"`
	AccountType      string `json:"accountType"`
	CompanyName      string `json:"companyName"`
	CNPJ             string `json:"cnpj"`
	NumberOfPartners string `json:"numberOfPartners"`
	CreciNumber      string `json:"creciNumber"`
	CreciUf          string `json:"creciUf"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	UserID           string `json:"userId"`
	// Minor units; zero means the endpoint default.
	Amount int64 `json:"amount"`
}
