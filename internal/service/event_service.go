package service

import (
	"errors"
	"numiviz_backend/internal/model"
	"numiviz_backend/internal/repository"
	"numiviz_backend/internal/util"

	"gorm.io/gorm"
)

// ErrEventForbidden l'événement appartient à un autre utilisateur
var ErrEventForbidden = errors.New("événement d'un autre utilisateur")

// EventService agenda personnel (cours, TP, examens)
type EventService struct {
	EventRepo *repository.EventRepository
}

func NewEventService(eventRepo *repository.EventRepository) *EventService {
	return &EventService{EventRepo: eventRepo}
}

func (s *EventService) List(userID uint) ([]model.CalendarEvent, error) {
	return s.EventRepo.FindByUser(userID)
}

func (s *EventService) Create(userID uint, e *model.CalendarEvent) error {
	e.IDUtilisateur = userID
	if e.Type == "" {
		e.Type = "cours"
	}
	if !e.Fin.After(e.Debut) {
		return errors.New("la fin doit être après le début")
	}
	return s.EventRepo.Create(e)
}

// Update modifie un événement, uniquement par son propriétaire
func (s *EventService) Update(userID uint, e *model.CalendarEvent) error {
	existing, err := s.EventRepo.FindByID(e.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrEventNotFound
		}
		return err
	}
	if existing.IDUtilisateur != userID {
		return ErrEventForbidden
	}
	e.IDUtilisateur = userID
	return s.EventRepo.Update(e)
}

func (s *EventService) Delete(userID, eventID uint) error {
	existing, err := s.EventRepo.FindByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrEventNotFound
		}
		return err
	}
	if existing.IDUtilisateur != userID {
		return ErrEventForbidden
	}
	return s.EventRepo.Delete(eventID)
}
