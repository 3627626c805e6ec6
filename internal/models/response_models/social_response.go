package response_models

type SocialPostResponse struct {
	ID               string   `json:"id"`
	OwnerID          string   `json:"owner_id"`
	Content          string   `json:"content"`
	Platforms        []string `json:"platforms"`
	MediaUrls        []string `json:"media_urls"`
	Campaign         *string  `json:"campaign,omitempty"`
	Notes            *string  `json:"notes,omitempty"`
	Status           string   `json:"status"`
	ScheduledAt      *int64   `json:"scheduled_at,omitempty"`
	PublishedAt      *int64   `json:"published_at,omitempty"`
	Timezone         string   `json:"timezone"`
	ApprovalRequired bool     `json:"approval_required"`

	PublishResults []PlatformPublishResult `json:"publish_results,omitempty"`

	CreatedAt int64 `json:"created_at"`
}

// PlatformPublishResult is one network's outcome of a publish run.
type PlatformPublishResult struct {
	Platform    string `json:"platform"`
	Success     bool   `json:"success"`
	Error       string `json:"error,omitempty"`
	PublishedAt int64  `json:"published_at"`
}

type SocialPublishStatsResponse struct {
	Total     int64 `json:"total"`
	Draft     int64 `json:"draft"`
	Scheduled int64 `json:"scheduled"`
	Published int64 `json:"published"`
	Failed    int64 `json:"failed"`
}
