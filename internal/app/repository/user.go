package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"backend/internal/app/ds"
)

// Методы для пользователей (ORM)

func (r *Repository) GetUserByID(id uint) (*ds.User, error) {
	var user ds.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) GetUserByEmail(email string) (*ds.User, error) {
	var user ds.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) UserExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&ds.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *Repository) CreateUser(email, passwordHash, passwordSalt string) (*ds.User, error) {
	user := ds.User{
		Email:        email,
		PasswordHash: passwordHash,
		PasswordSalt: passwordSalt,
		Role:         "user",
	}

	err := r.db.Create(&user).Error
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *Repository) SaveUser(user *ds.User) error {
	return r.db.Save(user).Error
}

// SetVerificationCode сохраняет код подтверждения и время его запроса
func (r *Repository) SetVerificationCode(userID uint, code string, expiresAt time.Time) error {
	now := time.Now()
	return r.db.Model(&ds.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"email_verification_code":            code,
		"email_verification_code_expires_at": expiresAt,
		"last_code_request_at":               now,
	}).Error
}

// MarkEmailVerified сбрасывает код и помечает email подтверждённым
func (r *Repository) MarkEmailVerified(userID uint) error {
	return r.db.Model(&ds.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"email_verified":                     true,
		"email_verification_code":            nil,
		"email_verification_code_expires_at": nil,
	}).Error
}

// SetNewEmailCode сохраняет ожидающий подтверждения новый email
func (r *Repository) SetNewEmailCode(userID uint, newEmail, code string) error {
	now := time.Now()
	return r.db.Model(&ds.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"new_email":                   newEmail,
		"new_email_verification_code": code,
		"last_code_request_at":        now,
	}).Error
}

// ConfirmNewEmail заменяет email после подтверждения кода
func (r *Repository) ConfirmNewEmail(userID uint) error {
	var user ds.User
	if err := r.db.First(&user, userID).Error; err != nil {
		return err
	}
	if user.NewEmail == nil {
		return errors.New("нет ожидающей смены email")
	}

	return r.db.Model(&ds.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"email":                       *user.NewEmail,
		"new_email":                   nil,
		"new_email_verification_code": nil,
	}).Error
}

func (r *Repository) UpdatePassword(userID uint, passwordHash, passwordSalt string) error {
	return r.db.Model(&ds.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"password_hash": passwordHash,
		"password_salt": passwordSalt,
	}).Error
}

// UpdateLastActivity обновляет отметку активности, вызывается из middleware
func (r *Repository) UpdateLastActivity(userID uint) error {
	now := time.Now()
	return r.db.Model(&ds.User{}).Where("id = ?", userID).Update("last_activity_at", now).Error
}

func (r *Repository) IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
