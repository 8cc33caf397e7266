package repository

import (
	"numiviz_backend/internal/model"

	"gorm.io/gorm"
)

type ExerciseRepository struct {
	DB *gorm.DB
}

func NewExerciseRepository(db *gorm.DB) *ExerciseRepository {
	return &ExerciseRepository{DB: db}
}

func (r *ExerciseRepository) Create(e *model.Exercise) error {
	return r.DB.Create(e).Error
}

func (r *ExerciseRepository) FindByID(id uint) (*model.Exercise, error) {
	var e model.Exercise
	err := r.DB.Where("actif = ?", true).First(&e, id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *ExerciseRepository) FindAll() ([]model.Exercise, error) {
	var exercises []model.Exercise
	err := r.DB.Where("actif = ?", true).Order("id").Find(&exercises).Error
	return exercises, err
}

// Filter exercices par chapitre et/ou TP, filtres vides ignorés
func (r *ExerciseRepository) Filter(chapter, tp string) ([]model.Exercise, error) {
	q := r.DB.Where("actif = ?", true)
	if chapter != "" {
		q = q.Where("chapitre = ?", chapter)
	}
	if tp != "" {
		q = q.Where("tp = ?", tp)
	}
	var exercises []model.Exercise
	err := q.Order("id").Find(&exercises).Error
	return exercises, err
}

func (r *ExerciseRepository) Update(e *model.Exercise) error {
	return r.DB.Save(e).Error
}

func (r *ExerciseRepository) UpdateLessonID(exerciseID, lessonID uint) error {
	return r.DB.Model(&model.Exercise{}).Where("id = ?", exerciseID).Update("id_lecon", lessonID).Error
}

func (r *ExerciseRepository) Delete(id uint) error {
	return r.DB.Model(&model.Exercise{}).Where("id = ?", id).Update("actif", false).Error
}

func (r *ExerciseRepository) DistinctChapters() ([]string, error) {
	var chapters []string
	err := r.DB.Model(&model.Exercise{}).Where("actif = ? AND chapitre <> ''", true).
		Distinct().Order("chapitre").Pluck("chapitre", &chapters).Error
	return chapters, err
}
