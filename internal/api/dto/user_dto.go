package dto

import "github.com/shopspring/decimal"

// UserProfile is the public projection of an account. The password hash never leaves the store.
type UserProfile struct {
	Username       string          `json:"username"`
	ImageURL       string          `json:"imageUrl"`
	Plan           string          `json:"plan"`
	State          string          `json:"state"`
	LikesAvailable int64           `json:"likesAvailable"`
	LikesEarned    int64           `json:"likesEarned"`
	MoneyEarned    decimal.Decimal `json:"moneyEarned" swaggertype:"string" example:"0"`
}

// ProfileStats adds social and content totals to a profile.
type ProfileStats struct {
	UserProfile
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
	Likes     int64 `json:"likes"`
	Posts     int64 `json:"posts"`
}

type UpdateProfilePictureRequest struct {
	Username string `json:"username" binding:"required"`
	ImageURL string `json:"imageUrl" binding:"required,max=1000"`
}

type UpdatePasswordRequest struct {
	Username    string `json:"username" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=4"`
}
