package model

import "encoding/json"

// swagger:model Quiz
type Quiz struct {
	BaseModel
	Titre      string         `gorm:"size:255;not null" json:"titre"`
	IDModule   uint           `gorm:"index;not null" json:"id_module"`
	IsRemedial bool           `gorm:"default:false" json:"is_remedial"` // quiz de rattrapage proposé sous 50%
	Ordre      int            `gorm:"default:0" json:"ordre"`
	Questions  []QuizQuestion `gorm:"foreignKey:IDQuiz" json:"questions,omitempty"`
	Actif      bool           `gorm:"default:true" json:"actif"`
}

func (Quiz) TableName() string {
	return "quiz"
}

// swagger:model QuizQuestion
type QuizQuestion struct {
	BaseModel
	IDQuiz         uint            `gorm:"index;not null" json:"id_quiz"`
	Texte          string          `gorm:"type:text;not null" json:"texte"`
	Type           string          `gorm:"size:20;default:'mcq'" json:"type"` // mcq | bool | text
	Options        json.RawMessage `gorm:"type:json" json:"options,omitempty"`
	BonnesReponses json.RawMessage `gorm:"type:json" json:"bonnes_reponses"`
	Points         int             `gorm:"default:1" json:"points"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// swagger:model ScoreQuiz
type ScoreQuiz struct {
	BaseModel
	IDQuiz        uint            `gorm:"index;not null" json:"id_quiz"`
	IDUtilisateur uint            `gorm:"index;not null" json:"id_utilisateur"`
	Score         float64         `json:"score"` // pourcentage 0..100
	Total         int             `json:"total"` // nombre de questions
	IsRemedial    bool            `gorm:"default:false" json:"is_remedial"`
	Details       json.RawMessage `gorm:"type:json" json:"details,omitempty"` // réponses par question
}

func (ScoreQuiz) TableName() string {
	return "scores_quiz"
}
