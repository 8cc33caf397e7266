package repository

import (
	"numiviz_backend/internal/model"

	"gorm.io/gorm"
)

type HistoryRepository struct {
	DB *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{DB: db}
}

func (r *HistoryRepository) Create(h *model.LinearSystemHistory) error {
	return r.DB.Create(h).Error
}

func (r *HistoryRepository) FindByUser(userID uint) ([]model.LinearSystemHistory, error) {
	var rows []model.LinearSystemHistory
	err := r.DB.Where("id_utilisateur = ?", userID).Order("created_at desc").Limit(50).Find(&rows).Error
	return rows, err
}

func (r *HistoryRepository) DeleteByUser(userID uint) error {
	return r.DB.Where("id_utilisateur = ?", userID).Delete(&model.LinearSystemHistory{}).Error
}
