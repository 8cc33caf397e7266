package repository

import (
	"numiviz_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// Upsert une ligne par (utilisateur, module, leçon). La progression
// stockée ne régresse jamais, même si un rapport plus bas arrive après
// un redémarrage.
func (r *ProgressRepository) Upsert(p *model.Progression) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "id_utilisateur"}, {Name: "id_module"}, {Name: "id_lecon"},
		},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"progression_video": gorm.Expr("GREATEST(progression_video, VALUES(progression_video))"),
			"termine":           gorm.Expr("termine OR VALUES(termine)"),
			"updated_at":        time.Now(),
		}),
	}).Create(p).Error
}

func (r *ProgressRepository) FindByUserLesson(userID, lessonID uint) (*model.Progression, error) {
	var p model.Progression
	err := r.DB.Where("id_utilisateur = ? AND id_lecon = ?", userID, lessonID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProgressRepository) FindByUserModule(userID, moduleID uint) ([]model.Progression, error) {
	var rows []model.Progression
	err := r.DB.Where("id_utilisateur = ? AND id_module = ?", userID, moduleID).Find(&rows).Error
	return rows, err
}
