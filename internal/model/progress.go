package model

// Progression avancement d'un étudiant sur une leçon
// une ligne par (utilisateur, module, leçon)
// swagger:model Progression
type Progression struct {
	BaseModel
	IDUtilisateur    uint    `gorm:"index:idx_prog,unique;not null" json:"id_utilisateur"`
	IDModule         uint    `gorm:"index:idx_prog,unique;not null" json:"id_module"`
	IDLecon          uint    `gorm:"index:idx_prog,unique;not null" json:"id_lecon"`
	ProgressionVideo float64 `gorm:"default:0" json:"progression_video"` // pourcentage 0..100
	Termine          bool    `gorm:"default:false" json:"termine"`
}

func (Progression) TableName() string {
	return "progression_etudiant"
}

// Un visionnage compte comme terminé à partir de ce seuil
const VideoWatchedThreshold = 90.0

// ModuleProgress synthèse calculée, jamais persistée
type ModuleProgress struct {
	IDModule       uint    `json:"id_module"`
	VideoAverage   float64 `json:"video_average"`
	QuizAverage    float64 `json:"quiz_average"`
	Overall        float64 `json:"overall"` // 70% vidéo + 30% quiz
	LessonsWatched int     `json:"lessons_watched"`
	LessonsTotal   int     `json:"lessons_total"`
}
