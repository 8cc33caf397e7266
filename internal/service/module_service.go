package service

import (
	"numiviz_backend/internal/model"
	"numiviz_backend/internal/repository"
)

type ModuleService struct {
	ModuleRepo   *repository.ModuleRepository
	LessonRepo   *repository.LessonRepository
	ExerciseRepo *repository.ExerciseRepository
}

func NewModuleService(moduleRepo *repository.ModuleRepository, lessonRepo *repository.LessonRepository, exerciseRepo *repository.ExerciseRepository) *ModuleService {
	return &ModuleService{
		ModuleRepo:   moduleRepo,
		LessonRepo:   lessonRepo,
		ExerciseRepo: exerciseRepo,
	}
}

func (s *ModuleService) List() ([]model.Module, error) {
	return s.ModuleRepo.FindAll()
}

func (s *ModuleService) Get(id uint) (*model.Module, error) {
	return s.ModuleRepo.FindByID(id)
}

func (s *ModuleService) Create(m *model.Module, teacherID uint) error {
	m.IDEnseignant = teacherID
	m.Actif = true
	return s.ModuleRepo.Create(m)
}

func (s *ModuleService) Update(m *model.Module) error {
	return s.ModuleRepo.Update(m)
}

func (s *ModuleService) Delete(id uint) error {
	return s.ModuleRepo.Delete(id)
}

// Lessons liste les leçons d'un module. Un étudiant ne voit que les
// leçons publiées, sans les solutions d'exercice non dévoilées; un
// enseignant voit tout.
func (s *ModuleService) Lessons(moduleID uint, role model.UserRole) ([]model.Lesson, error) {
	if role == model.Professeur || role == model.Admin {
		return s.LessonRepo.FindByModule(moduleID)
	}
	lessons, err := s.LessonRepo.FindPublishedByModule(moduleID)
	if err != nil {
		return nil, err
	}
	for i := range lessons {
		redacted := model.RedactSolutions(lessons[i].Blocks())
		if err := lessons[i].SetBlocks(redacted); err != nil {
			return nil, err
		}
	}
	return lessons, nil
}

// Chapters chapitres distincts référencés par les exercices
func (s *ModuleService) Chapters() ([]string, error) {
	return s.ExerciseRepo.DistinctChapters()
}
