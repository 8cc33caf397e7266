package service

import (
	"numiviz_backend/internal/model"
	"numiviz_backend/internal/repository"
)

type ExerciseService struct {
	ExerciseRepo *repository.ExerciseRepository
}

func NewExerciseService(exerciseRepo *repository.ExerciseRepository) *ExerciseService {
	return &ExerciseService{ExerciseRepo: exerciseRepo}
}

func (s *ExerciseService) List() ([]model.Exercise, error) {
	return s.ExerciseRepo.FindAll()
}

func (s *ExerciseService) Get(id uint) (*model.Exercise, error) {
	return s.ExerciseRepo.FindByID(id)
}

func (s *ExerciseService) Create(e *model.Exercise) error {
	if e.Type == "" {
		e.Type = "Application"
	}
	if e.Points == 0 {
		e.Points = 1
	}
	e.Actif = true
	return s.ExerciseRepo.Create(e)
}

func (s *ExerciseService) Update(e *model.Exercise) error {
	return s.ExerciseRepo.Update(e)
}

func (s *ExerciseService) Delete(id uint) error {
	return s.ExerciseRepo.Delete(id)
}

func (s *ExerciseService) Filter(chapter, tp string) ([]model.Exercise, error) {
	return s.ExerciseRepo.Filter(chapter, tp)
}
