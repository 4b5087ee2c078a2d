package ds

import "time"

// Таблица пользователей
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"type:varchar(100);unique;not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	PasswordSalt string `gorm:"type:varchar(64);not null"`
	Role         string `gorm:"type:varchar(20);default:'user';not null"`

	// Верификация email
	EmailVerified                  bool       `gorm:"type:boolean;default:false;not null"`
	EmailVerificationCode          *string    `gorm:"type:varchar(10)"`
	EmailVerificationCodeExpiresAt *time.Time `gorm:"default:null"`

	// Смена email (код отправляется на новый адрес)
	NewEmail                 *string `gorm:"type:varchar(100)"`
	NewEmailVerificationCode *string `gorm:"type:varchar(10)"`

	LastCodeRequestAt *time.Time `gorm:"default:null"`
	LastActivityAt    *time.Time `gorm:"default:null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
