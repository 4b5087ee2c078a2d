package repository

import (
	"errors"

	"gorm.io/gorm"

	"backend/internal/app/ds"
)

// Адреса доставки

func (r *Repository) CreateAddress(address *ds.Address) error {
	if address.IsDefault {
		return r.db.Transaction(func(tx *gorm.DB) error {
			err := tx.Model(&ds.Address{}).Where("user_id = ?", address.UserID).
				Update("is_default", false).Error
			if err != nil {
				return err
			}
			return tx.Create(address).Error
		})
	}
	return r.db.Create(address).Error
}

func (r *Repository) GetAddresses(userID uint) ([]ds.Address, error) {
	var addresses []ds.Address
	err := r.db.Where("user_id = ?", userID).Order("is_default DESC, id").Find(&addresses).Error
	return addresses, err
}

func (r *Repository) GetAddressByID(id, userID uint) (*ds.Address, error) {
	var address ds.Address
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&address).Error
	if err != nil {
		return nil, err
	}
	return &address, nil
}

type AddressPatch struct {
	Street    *string
	House     *string
	Apartment *string
	Comment   *string
}

func (r *Repository) UpdateAddress(id, userID uint, patch AddressPatch) error {
	updates := map[string]interface{}{}
	if patch.Street != nil {
		updates["street"] = *patch.Street
	}
	if patch.House != nil {
		updates["house"] = *patch.House
	}
	if patch.Apartment != nil {
		updates["apartment"] = *patch.Apartment
	}
	if patch.Comment != nil {
		updates["comment"] = *patch.Comment
	}
	if len(updates) == 0 {
		return nil
	}

	result := r.db.Model(&ds.Address{}).Where("id = ? AND user_id = ?", id, userID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("адрес не найден")
	}
	return nil
}

// SetDefaultAddress делает адрес основным, снимая флаг с остальных
func (r *Repository) SetDefaultAddress(id, userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&ds.Address{}).Where("user_id = ?", userID).
			Update("is_default", false).Error
		if err != nil {
			return err
		}

		result := tx.Model(&ds.Address{}).Where("id = ? AND user_id = ?", id, userID).
			Update("is_default", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errors.New("адрес не найден")
		}
		return nil
	})
}

func (r *Repository) DeleteAddress(id, userID uint) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&ds.Address{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("адрес не найден")
	}
	return nil
}
