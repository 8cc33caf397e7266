package repository

import (
	"numiviz_backend/internal/model"

	"gorm.io/gorm"
)

type EventRepository struct {
	DB *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{DB: db}
}

func (r *EventRepository) Create(e *model.CalendarEvent) error {
	return r.DB.Create(e).Error
}

func (r *EventRepository) FindByID(id uint) (*model.CalendarEvent, error) {
	var e model.CalendarEvent
	err := r.DB.First(&e, id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EventRepository) FindByUser(userID uint) ([]model.CalendarEvent, error) {
	var events []model.CalendarEvent
	err := r.DB.Where("id_utilisateur = ?", userID).Order("debut").Find(&events).Error
	return events, err
}

func (r *EventRepository) Update(e *model.CalendarEvent) error {
	return r.DB.Save(e).Error
}

func (r *EventRepository) Delete(id uint) error {
	return r.DB.Delete(&model.CalendarEvent{}, id).Error
}
