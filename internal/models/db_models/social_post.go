package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SocialPostStatus string

const (
	SocialPostStatusDraft     SocialPostStatus = "draft"
	SocialPostStatusScheduled SocialPostStatus = "scheduled"
	SocialPostStatusPublished SocialPostStatus = "published"
	SocialPostStatusFailed    SocialPostStatus = "failed"
)

// Networks a post can target.
var SocialPlatforms = []string{
	"instagram",
	"facebook",
	"linkedin",
	"x",
	"tiktok",
	"youtube",
	"threads",
	"pinterest",
	"bluesky",
	"mastodon",
	"google_business",
}

func ValidSocialPlatform(p string) bool {
	for _, v := range SocialPlatforms {
		if v == p {
			return true
		}
	}
	return false
}

// SocialPost is a draft or scheduled publication for the owner's social
// networks. Draft posts have no scheduled time; scheduled ones are picked
// up by the publisher sweep once ScheduledAt passes.
type SocialPost struct {
	BaseModel
	OwnerID uuid.UUID `gorm:"index"`

	Content   string
	Platforms datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	MediaUrls datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	Campaign  *string        `gorm:"index"`
	Notes     *string

	Status SocialPostStatus `gorm:"index;default:draft"`

	// Unix seconds, like every other timestamp column.
	ScheduledAt *int64 `gorm:"index"`
	PublishedAt *int64
	Timezone    string `gorm:"default:UTC"`

	ApprovalRequired bool `gorm:"default:false"`

	// Per-platform outcome of the last publish attempt.
	PublishResults datatypes.JSON `gorm:"type:jsonb;default:'[]'"`

	Account Account `gorm:"foreignKey:OwnerID"`
}
