package request_models

type CreateSocialPostRequest struct {
	Content          string   `json:"content" binding:"required"`
	Platforms        []string `json:"platforms" binding:"required"`
	MediaUrls        []string `json:"media_urls"`
	Campaign         *string  `json:"campaign"`
	Notes            *string  `json:"notes"`
	ScheduledAt      *string  `json:"scheduled_at"` // RFC 3339; omit for a draft
	Timezone         string   `json:"timezone"`
	ApprovalRequired bool     `json:"approval_required"`
}

type UpdateSocialPostRequest struct {
	Content     *string  `json:"content"`
	Platforms   []string `json:"platforms"`
	MediaUrls   []string `json:"media_urls"`
	Campaign    *string  `json:"campaign"`
	Notes       *string  `json:"notes"`
	ScheduledAt *string  `json:"scheduled_at"`
	Timezone    *string  `json:"timezone"`
}

// ListSocialPostsQuery maps the list endpoint's query string.
type ListSocialPostsQuery struct {
	Status   string `form:"status"`
	Platform string `form:"platform"`
	Campaign string `form:"campaign"`
	Skip     int    `form:"skip"`
	Take     int    `form:"take"`
	OrderBy  string `form:"order_by"` // newest | oldest | scheduled
}
