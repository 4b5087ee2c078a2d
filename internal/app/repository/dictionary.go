package repository

import (
	"errors"

	"backend/internal/app/ds"
)

// Справочники и их элементы

var (
	ErrDictionaryNotFound = errors.New("справочник не найден")
	ErrBadParent          = errors.New("неверный родительский элемент")
)

func (r *Repository) GetDictionaries() ([]ds.Dictionary, error) {
	var dictionaries []ds.Dictionary
	err := r.db.Order("id").Find(&dictionaries).Error
	return dictionaries, err
}

func (r *Repository) GetDictionaryByName(name string) (*ds.Dictionary, error) {
	var dictionary ds.Dictionary
	err := r.db.Where("name = ?", name).First(&dictionary).Error
	if err != nil {
		if r.IsNotFound(err) {
			return nil, ErrDictionaryNotFound
		}
		return nil, err
	}
	return &dictionary, nil
}

func (r *Repository) CreateDictionary(dictionary *ds.Dictionary) error {
	return r.db.Create(dictionary).Error
}

// GetDictionaryItems возвращает активные элементы справочника по его имени.
// parentID фильтрует по родителю, parentSet=false отдаёт все элементы,
// parentSet=true с parentID=nil - только корневые (parent_id IS NULL).
func (r *Repository) GetDictionaryItems(dictionaryName string, parentID *uint, parentSet bool) ([]ds.DictionaryItem, error) {
	dictionary, err := r.GetDictionaryByName(dictionaryName)
	if err != nil {
		return nil, err
	}

	query := r.db.Where("dictionary_id = ? AND is_active = ?", dictionary.ID, true)
	if parentSet {
		if parentID == nil {
			query = query.Where("parent_id IS NULL")
		} else {
			query = query.Where("parent_id = ?", *parentID)
		}
	}

	var items []ds.DictionaryItem
	err = query.Order("sort_order, id").Find(&items).Error
	return items, err
}

func (r *Repository) GetDictionaryItemByID(id uint) (*ds.DictionaryItem, error) {
	var item ds.DictionaryItem
	err := r.db.Where("id = ? AND is_active = ?", id, true).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Repository) CreateDictionaryItem(item *ds.DictionaryItem) error {
	return r.db.Create(item).Error
}

func (r *Repository) UpdateDictionaryItem(item *ds.DictionaryItem) error {
	return r.db.Save(item).Error
}

// DeactivateDictionaryItem - логическое удаление элемента
func (r *Repository) DeactivateDictionaryItem(id uint) error {
	result := r.db.Model(&ds.DictionaryItem{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("элемент не найден")
	}
	return nil
}

// itemBelongsTo проверяет, что элемент принадлежит справочнику с данным именем
func (r *Repository) itemBelongsTo(itemID uint, dictionaryName string) (*ds.DictionaryItem, error) {
	item, err := r.GetDictionaryItemByID(itemID)
	if err != nil {
		return nil, err
	}
	dictionary, err := r.GetDictionaryByName(dictionaryName)
	if err != nil {
		return nil, err
	}
	if item.DictionaryID != dictionary.ID {
		return nil, ErrBadParent
	}
	return item, nil
}

// ValidateLocationHierarchy проверяет цепочку регион -> город -> метро:
// город должен принадлежать региону, станция метро - городу.
func (r *Repository) ValidateLocationHierarchy(regionID, cityID uint, metroID *uint) error {
	if _, err := r.itemBelongsTo(regionID, ds.DictionaryRegions); err != nil {
		return err
	}

	city, err := r.itemBelongsTo(cityID, ds.DictionaryCities)
	if err != nil {
		return err
	}
	if city.ParentID == nil || *city.ParentID != regionID {
		return ErrBadParent
	}

	if metroID != nil {
		metro, err := r.itemBelongsTo(*metroID, ds.DictionaryMetroStations)
		if err != nil {
			return err
		}
		if metro.ParentID == nil || *metro.ParentID != cityID {
			return ErrBadParent
		}
	}

	return nil
}
