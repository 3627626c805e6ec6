package response_models

type ListingResponse struct {
	ID            string   `json:"id"`
	OwnerID       string   `json:"owner_id"`
	Title         string   `json:"title"`
	AddressLine1  *string  `json:"address_line1,omitempty"`
	AddressNumber *string  `json:"address_number,omitempty"`
	City          *string  `json:"city,omitempty"`
	StateCode     *string  `json:"state_code,omitempty"`
	Price         int64    `json:"price"`
	Bedrooms      *int     `json:"bedrooms,omitempty"`
	Bathrooms     *int     `json:"bathrooms,omitempty"`
	Media         []string `json:"media"`
	Status        string   `json:"status"`
	CreatedAt     int64    `json:"created_at"`
}
