package model

import "time"

// Visibilité d'une leçon
type Visibility string

const (
	VisibiliteBrouillon Visibility = "brouillon"
	VisibilitePublie    Visibility = "publie"
	VisibilitePlanifie  Visibility = "planifie"
)

// swagger:model Lesson
type Lesson struct {
	BaseModel
	Titre           string     `gorm:"size:255;not null" json:"titre"`
	Contenu         string     `gorm:"type:json" json:"contenu"` // enveloppe de blocs, voir content_block.go
	Ordre           int        `gorm:"default:1" json:"ordre"`
	IDModule        uint       `gorm:"index;not null" json:"id_module"`
	Visibilite      Visibility `gorm:"type:enum('brouillon','publie','planifie');default:'brouillon'" json:"visibilite"`
	DatePublication *time.Time `json:"date_publication,omitempty"` // pour visibilite=planifie
	Actif           bool       `gorm:"default:true" json:"actif"`
}

func (Lesson) TableName() string {
	return "lecons"
}

// Blocks décode la colonne contenu, sans jamais échouer
func (l *Lesson) Blocks() []Block {
	return DecodeBlocks(l.Contenu)
}

// SetBlocks réencode les blocs dans la colonne contenu
func (l *Lesson) SetBlocks(blocks []Block) error {
	contenu, err := EncodeBlocks(blocks)
	if err != nil {
		return err
	}
	l.Contenu = contenu
	return nil
}
