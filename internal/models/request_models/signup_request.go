package request_models

// AccountStepRequest is the first wizard step: identity only, no backend
// writes happen on submit.
type AccountStepRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=6"`
}

// ProfessionalStepRequest is the second step. Every field besides the flow
// id is optional; CRECI data can be completed later from the account page.
type ProfessionalStepRequest struct {
	FlowID      string `json:"flow_id" binding:"required"`
	CPF         string `json:"cpf"`
	AccountType string `json:"account_type"`
	CompanyName string `json:"company_name"`
	CNPJ        string `json:"cnpj"`
	CreciNumber string `json:"creci_number"`
	CreciUf     string `json:"creci_uf"`
}

// CompleteSignupRequest re-authenticates after the hosted payment UI
// confirmed the charge.
type CompleteSignupRequest struct {
	FlowID   string `json:"flow_id" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
