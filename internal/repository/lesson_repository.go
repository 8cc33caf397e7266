package repository

import (
	"numiviz_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) Create(l *model.Lesson) error {
	return r.DB.Create(l).Error
}

func (r *LessonRepository) FindByID(id uint) (*model.Lesson, error) {
	var l model.Lesson
	err := r.DB.Where("actif = ?", true).First(&l, id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LessonRepository) FindByModule(moduleID uint) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.Where("id_module = ? AND actif = ?", moduleID, true).Order("ordre, id").Find(&lessons).Error
	return lessons, err
}

// FindPublishedByModule leçons visibles pour un étudiant
func (r *LessonRepository) FindPublishedByModule(moduleID uint) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.Where("id_module = ? AND actif = ? AND visibilite = ?", moduleID, true, model.VisibilitePublie).
		Order("ordre, id").Find(&lessons).Error
	return lessons, err
}

func (r *LessonRepository) Update(l *model.Lesson) error {
	return r.DB.Save(l).Error
}

func (r *LessonRepository) Delete(id uint) error {
	return r.DB.Model(&model.Lesson{}).Where("id = ?", id).Update("actif", false).Error
}

// FindScheduledDue leçons planifiées dont la date de publication est passée
func (r *LessonRepository) FindScheduledDue(now time.Time) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.Where("visibilite = ? AND date_publication IS NOT NULL AND date_publication <= ? AND actif = ?",
		model.VisibilitePlanifie, now, true).Find(&lessons).Error
	return lessons, err
}

func (r *LessonRepository) Publish(id uint) error {
	return r.DB.Model(&model.Lesson{}).Where("id = ?", id).
		Updates(map[string]interface{}{"visibilite": model.VisibilitePublie, "date_publication": nil}).Error
}
