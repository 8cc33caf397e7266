package model

import "time"

// swagger:model CalendarEvent
type CalendarEvent struct {
	BaseModel
	Titre         string    `gorm:"size:255;not null" json:"titre"`
	Description   string    `gorm:"type:text" json:"description"`
	Type          string    `gorm:"size:50;default:'cours'" json:"type"` // cours | tp | examen | autre
	Debut         time.Time `gorm:"not null" json:"debut"`
	Fin           time.Time `gorm:"not null" json:"fin"`
	IDUtilisateur uint      `gorm:"index;not null" json:"id_utilisateur"`
}

func (CalendarEvent) TableName() string {
	return "calendar_events"
}
