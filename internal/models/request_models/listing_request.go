package request_models

type CreateListingRequest struct {
	Title         string   `json:"title" binding:"required"`
	AddressLine1  *string  `json:"address_line1"`
	AddressNumber *string  `json:"address_number"`
	City          *string  `json:"city"`
	StateCode     *string  `json:"state_code"`
	Price         int64    `json:"price"`
	Bedrooms      *int     `json:"bedrooms"`
	Bathrooms     *int     `json:"bathrooms"`
	Media         []string `json:"media"`
	Status        string   `json:"status"`
}

type UpdateListingRequest struct {
	Title         *string  `json:"title"`
	AddressLine1  *string  `json:"address_line1"`
	AddressNumber *string  `json:"address_number"`
	City          *string  `json:"city"`
	StateCode     *string  `json:"state_code"`
	Price         *int64   `json:"price"`
	Bedrooms      *int     `json:"bedrooms"`
	Bathrooms     *int     `json:"bathrooms"`
	Media         []string `json:"media"`
	Status        *string  `json:"status"`
}
