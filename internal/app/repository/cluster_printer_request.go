package repository

import (
	"errors"

	"gorm.io/gorm"

	"backend/internal/app/ds"
)

// Запросы на подключение принтеров к кластерам

var (
	ErrRequestAlreadyPending = errors.New("по этой паре уже есть ожидающий запрос")
	ErrPrinterAlreadyInUse   = errors.New("принтер уже привязан к кластеру")
	ErrRequestNotPending     = errors.New("запрос уже обработан")
)

// CreatePrinterRequest создаёт запрос владельца кластера на чужой принтер.
// Не допускает второй pending-запрос и запрос на уже привязанный принтер.
func (r *Repository) CreatePrinterRequest(clusterID, printerID, requestedBy, printerOwnerID uint, message string) (*ds.ClusterPrinterRequest, error) {
	var pending int64
	err := r.db.Model(&ds.ClusterPrinterRequest{}).
		Where("cluster_id = ? AND printer_id = ? AND status = ?", clusterID, printerID, ds.RequestStatusPending).
		Count(&pending).Error
	if err != nil {
		return nil, err
	}
	if pending > 0 {
		return nil, ErrRequestAlreadyPending
	}

	attached, err := r.IsPrinterAttached(clusterID, printerID)
	if err != nil {
		return nil, err
	}
	if attached {
		return nil, ErrPrinterAlreadyInUse
	}

	request := ds.ClusterPrinterRequest{
		ClusterID:      clusterID,
		PrinterID:      printerID,
		RequestedBy:    requestedBy,
		PrinterOwnerID: printerOwnerID,
		Status:         ds.RequestStatusPending,
		Message:        message,
	}
	if err := r.db.Create(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *Repository) GetPrinterRequestByID(id uint) (*ds.ClusterPrinterRequest, error) {
	var request ds.ClusterPrinterRequest
	err := r.db.First(&request, id).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// Входящие запросы - на принтеры пользователя
func (r *Repository) GetIncomingRequests(printerOwnerID uint) ([]ds.ClusterPrinterRequest, error) {
	var requests []ds.ClusterPrinterRequest
	err := r.db.Where("printer_owner_id = ?", printerOwnerID).Order("id DESC").Find(&requests).Error
	return requests, err
}

// Исходящие запросы - созданные пользователем
func (r *Repository) GetOutgoingRequests(requestedBy uint) ([]ds.ClusterPrinterRequest, error) {
	var requests []ds.ClusterPrinterRequest
	err := r.db.Where("requested_by = ?", requestedBy).Order("id DESC").Find(&requests).Error
	return requests, err
}

// ApprovePrinterRequest одобряет запрос и привязывает принтер.
// Смена статуса идёт через compare-and-set по status='pending',
// поэтому второе одобрение того же запроса не проходит.
func (r *Repository) ApprovePrinterRequest(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var request ds.ClusterPrinterRequest
		if err := tx.First(&request, id).Error; err != nil {
			return err
		}

		result := tx.Model(&ds.ClusterPrinterRequest{}).
			Where("id = ? AND status = ?", id, ds.RequestStatusPending).
			Update("status", ds.RequestStatusApproved)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrRequestNotPending
		}

		var attached int64
		err := tx.Model(&ds.ClusterPrinter{}).
			Where("cluster_id = ? AND printer_id = ?", request.ClusterID, request.PrinterID).
			Count(&attached).Error
		if err != nil {
			return err
		}
		if attached > 0 {
			return ErrPrinterAlreadyInUse
		}

		link := ds.ClusterPrinter{
			ClusterID: request.ClusterID,
			PrinterID: request.PrinterID,
			AddedBy:   request.PrinterOwnerID,
		}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}

		return tx.Model(&ds.Printer{}).Where("id = ?", request.PrinterID).
			Update("cluster_id", request.ClusterID).Error
	})
}

func (r *Repository) RejectPrinterRequest(id uint) error {
	return r.setRequestStatus(id, ds.RequestStatusRejected)
}

func (r *Repository) CancelPrinterRequest(id uint) error {
	return r.setRequestStatus(id, ds.RequestStatusCancelled)
}

func (r *Repository) setRequestStatus(id uint, status string) error {
	result := r.db.Model(&ds.ClusterPrinterRequest{}).
		Where("id = ? AND status = ?", id, ds.RequestStatusPending).
		Update("status", status)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRequestNotPending
	}
	return nil
}
