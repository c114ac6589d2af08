package models

import "time"

type User struct {
	ID                uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Email             string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	FullName          string     `gorm:"type:varchar(128)" json:"full_name"`
	PasswordHash      string     `gorm:"type:varchar(255);not null" json:"-"`
	PreferredLanguage string     `gorm:"type:varchar(8);not null;default:en" json:"preferred_language"`
	Location          string     `gorm:"type:varchar(128)" json:"location"`
	Role              string     `gorm:"type:varchar(32);not null;default:Farmer" json:"role"`
	LastLoginAt       *time.Time `json:"last_login_at"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func (User) TableName() string { return "users" }
