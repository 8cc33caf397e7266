package service

import (
	"fmt"
	"numiviz_backend/internal/model"
	"numiviz_backend/internal/repository"
	"numiviz_backend/internal/util"
	"numiviz_backend/pkg/logger"
	"time"

	"go.uber.org/zap"
)

type LessonService struct {
	LessonRepo   *repository.LessonRepository
	ExerciseRepo *repository.ExerciseRepository
}

func NewLessonService(lessonRepo *repository.LessonRepository, exerciseRepo *repository.ExerciseRepository) *LessonService {
	return &LessonService{
		LessonRepo:   lessonRepo,
		ExerciseRepo: exerciseRepo,
	}
}

func (s *LessonService) Get(id uint) (*model.Lesson, error) {
	return s.LessonRepo.FindByID(id)
}

// GetVisible leçon visible pour le rôle donné: un étudiant n'accède
// qu'aux leçons publiées
func (s *LessonService) GetVisible(id uint, role model.UserRole) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if role == model.Professeur || role == model.Admin {
		return lesson, nil
	}
	if lesson.Visibilite != model.VisibilitePublie {
		return nil, util.ErrLessonNotFound
	}
	return lesson, nil
}

// SaveDraftResult issue d'une sauvegarde de brouillon
type SaveDraftResult struct {
	Lesson  *model.Lesson
	Created bool
}

// SaveDraft persiste un brouillon d'édition. Pour une création, les
// exercices enregistrés pendant le brouillon sont rattachés à la leçon
// après coup (leur id_lecon était encore inconnu). Si la création de la
// leçon échoue alors que des exercices ont déjà été créés, ceux-ci sont
// supprimés pour ne pas laisser d'orphelins. Un échec du rattachement
// après une création réussie est logué et toléré.
func (s *LessonService) SaveDraft(lesson *model.Lesson, draft *model.LessonDraft) (*SaveDraftResult, error) {
	if lesson.Titre == "" {
		return nil, util.ErrLessonTitleMissing
	}
	if err := lesson.SetBlocks(draft.Blocks()); err != nil {
		return nil, err
	}
	if lesson.Ordre == 0 {
		lesson.Ordre = 1
	}
	if lesson.Visibilite == "" {
		lesson.Visibilite = model.VisibiliteBrouillon
	}
	lesson.Actif = true

	creating := lesson.ID == 0
	var err error
	if creating {
		err = s.LessonRepo.Create(lesson)
	} else {
		err = s.LessonRepo.Update(lesson)
	}
	if err != nil {
		// Compensation: les exercices créés pour ce brouillon seraient orphelins
		for _, exID := range draft.CreatedExerciseIDs() {
			if derr := s.ExerciseRepo.Delete(exID); derr != nil {
				logger.Log.Error("compensation exercice échouée",
					zap.Uint("exercise_id", exID), zap.Error(derr))
			}
		}
		return nil, err
	}

	// Rattachement des exercices à la leçon nouvellement créée
	for _, exID := range draft.CreatedExerciseIDs() {
		if perr := s.ExerciseRepo.UpdateLessonID(exID, lesson.ID); perr != nil {
			logger.Log.Warn("rattachement exercice/leçon échoué",
				zap.Uint("exercise_id", exID), zap.Uint("lesson_id", lesson.ID), zap.Error(perr))
		}
	}

	return &SaveDraftResult{Lesson: lesson, Created: creating}, nil
}

// CreateExercise callback de brouillon: persiste le record exercice
// avant que le bloc ne soit ajouté
func (s *LessonService) CreateExercise(chapitre, tp string) func(*model.ExerciseContent) (uint, error) {
	return func(c *model.ExerciseContent) (uint, error) {
		ex := &model.Exercise{
			Question: c.Question,
			Solution: c.Solution,
			Feedback: c.Feedback,
			Type:     c.Type,
			Points:   c.Points,
			Chapitre: chapitre,
			TP:       tp,
			Actif:    true,
		}
		if err := s.ExerciseRepo.Create(ex); err != nil {
			return 0, err
		}
		return ex.ID, nil
	}
}

func (s *LessonService) Delete(id uint) error {
	return s.LessonRepo.Delete(id)
}

// ProcessScheduledPublishes publie les leçons planifiées arrivées à
// échéance (déclenché par le ticker de l'application)
func (s *LessonService) ProcessScheduledPublishes() error {
	lessons, err := s.LessonRepo.FindScheduledDue(time.Now())
	if err != nil {
		return err
	}
	for _, l := range lessons {
		if err := s.LessonRepo.Publish(l.ID); err != nil {
			logger.Log.Error("publication planifiée échouée",
				zap.Uint("lesson_id", l.ID), zap.Error(err))
			continue
		}
		logger.Log.Info("leçon publiée", zap.Uint("lesson_id", l.ID), zap.String("titre", l.Titre))
	}
	return nil
}

// Validate contrôle de cohérence avant sauvegarde côté API
func (s *LessonService) Validate(lesson *model.Lesson) error {
	if lesson.Titre == "" {
		return util.ErrLessonTitleMissing
	}
	if lesson.Visibilite == model.VisibilitePlanifie && lesson.DatePublication == nil {
		return fmt.Errorf("une leçon planifiée requiert une date de publication")
	}
	return nil
}
