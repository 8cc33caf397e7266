package model

import (
	"time"
)

type UserRole string

const (
	Etudiant   UserRole = "etudiant"
	Professeur UserRole = "professeur"
	Admin      UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Nom       string    `gorm:"size:100;not null" json:"nom"`
	Email     string    `gorm:"size:100;unique;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Role      UserRole  `gorm:"type:enum('etudiant','professeur','admin');default:'etudiant'" json:"role"`
	Actif     bool      `gorm:"default:true" json:"actif"`
	LastLogin time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen  time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "utilisateurs"
}
