package db_models

const (
	UserTypeConstellation = "constellation_user"
	UserTypeStellaAdmin   = "stella_admin"
)

type Account struct {
	BaseModel
	FullName     string
	Email        string `gorm:"uniqueIndex"`
	PasswordHash string
	UserType     string `gorm:"index;default:constellation_user"`
	Phone        *string

	Profile  *UserProfile `gorm:"foreignKey:UserID"`
	Listings []Listing    `gorm:"foreignKey:OwnerID"`
}
