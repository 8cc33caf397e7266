package model

// swagger:model Exercise
type Exercise struct {
	BaseModel
	Question string `gorm:"type:text;not null" json:"question"`
	Solution string `gorm:"type:text" json:"solution"`
	Feedback string `gorm:"type:text" json:"feedback"`
	Type     string `gorm:"size:50;default:'Application'" json:"type"`
	Points   int    `gorm:"default:1" json:"points"`
	Chapitre string `gorm:"size:100;index" json:"chapitre"`
	TP       string `gorm:"size:50;index" json:"tp"`
	IDLecon  *uint  `gorm:"index" json:"id_lecon,omitempty"` // null tant que la leçon n'est pas créée
	Actif    bool   `gorm:"default:true" json:"actif"`
}

func (Exercise) TableName() string {
	return "exercices"
}
