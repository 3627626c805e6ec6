package request_models

// PersonalEntryRequest is shared by the expenses and income POST endpoints.
type PersonalEntryRequest struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
	Category    string `json:"category"`
	Date        string `json:"date"`
}

// PersonalEntryUpdateRequest is the PUT body: the row id plus only the
// fields to change. Absent fields keep their stored values.
type PersonalEntryUpdateRequest struct {
	ID          string  `json:"id"`
	Description *string `json:"description"`
	Amount      *int64  `json:"amount"`
	Category    *string `json:"category"`
	Date        *string `json:"date"`
}
