package model

// swagger:model Module
type Module struct {
	BaseModel
	Titre        string `gorm:"size:255;not null" json:"titre"`
	Description  string `gorm:"type:text" json:"description"`
	Niveau       string `gorm:"size:50" json:"niveau"` // L1, L2, L3...
	Duree        int    `gorm:"default:0" json:"duree"` // durée estimée en minutes
	Ordre        int    `gorm:"default:0" json:"ordre"`
	IDEnseignant uint   `gorm:"index" json:"id_enseignant"`
	Actif        bool   `gorm:"default:true" json:"actif"`
}

func (Module) TableName() string {
	return "modules"
}
