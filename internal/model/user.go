package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is an account. Users are addressed by username everywhere outside this table.
type User struct {
	ID             int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Username       string          `gorm:"size:255;not null;uniqueIndex" json:"username"`
	PasswordHash   string          `gorm:"size:255;not null" json:"-"`
	ImageURL       string          `gorm:"size:1000;not null;default:''" json:"image_url"`
	Plan           string          `gorm:"size:50;not null;default:'blue'" json:"plan"`
	State          string          `gorm:"size:50;not null;default:'active'" json:"state"`
	LikesEarned    int64           `gorm:"not null;default:0" json:"likes_earned"`
	LikesAvailable int64           `gorm:"not null;default:0" json:"likes_available"`
	MoneyEarned    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"money_earned"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
