package model

// LinearSystemHistory trace des résolutions 2x2 du petit solveur y=mx+b
// swagger:model LinearSystemHistory
type LinearSystemHistory struct {
	BaseModel
	IDUtilisateur uint     `gorm:"index;not null" json:"id_utilisateur"`
	Line1         string   `gorm:"size:255;not null" json:"line1"`
	Line2         string   `gorm:"size:255;not null" json:"line2"`
	SolutionType  string   `gorm:"size:20" json:"solution_type"` // unique | none | infinite | invalid
	SolutionX     *float64 `json:"solution_x,omitempty"`
	SolutionY     *float64 `json:"solution_y,omitempty"`
}

func (LinearSystemHistory) TableName() string {
	return "linear_system_history"
}
