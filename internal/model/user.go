package model

import "time"

// User 作者 / 读者账号
type User struct {
	ID           string `gorm:"primaryKey;type:varchar(36)"`
	Username     string `gorm:"type:varchar(64);uniqueIndex;not null"`
	DisplayName  string `gorm:"type:varchar(128)"`
	PasswordHash string `gorm:"type:varchar(128);not null"`
	IsAdmin      bool   `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (User) TableName() string { return "users" }
