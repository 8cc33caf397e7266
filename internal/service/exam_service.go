package service

import (
	"numiviz_backend/internal/repository"
	"strings"
)

// ExamService mode examen: exercices filtrés par chapitre/TP et
// validation souple des réponses libres
type ExamService struct {
	ExerciseRepo *repository.ExerciseRepository
}

func NewExamService(exerciseRepo *repository.ExerciseRepository) *ExamService {
	return &ExamService{ExerciseRepo: exerciseRepo}
}

// ExamExercise exercice tel qu'exposé en mode examen: la solution sert
// de réponse attendue, le feedback n'est montré qu'après validation
type ExamExercise struct {
	ID              uint     `json:"id"`
	Question        string   `json:"question"`
	ExpectedAnswers []string `json:"expectedAnswers"`
	Feedback        string   `json:"feedback"`
	Points          int      `json:"points"`
	Chapitre        string   `json:"chapitre"`
	TP              string   `json:"tp"`
}

func (s *ExamService) Filter(chapter, tp string) ([]ExamExercise, error) {
	exercises, err := s.ExerciseRepo.Filter(chapter, tp)
	if err != nil {
		return nil, err
	}
	out := make([]ExamExercise, 0, len(exercises))
	for _, e := range exercises {
		out = append(out, ExamExercise{
			ID:              e.ID,
			Question:        e.Question,
			ExpectedAnswers: []string{e.Solution},
			Feedback:        e.Feedback,
			Points:          e.Points,
			Chapitre:        e.Chapitre,
			TP:              e.TP,
		})
	}
	return out, nil
}

// ValidateAnswer validation en trois niveaux de souplesse:
// correspondance exacte, puis comparaison alphanumérique normalisée,
// puis recouvrement de mots-clés quand la réponse attendue fait au plus
// trois mots. Une réponse vide est toujours fausse.
func ValidateAnswer(studentAnswer string, expectedAnswers []string) bool {
	if strings.TrimSpace(studentAnswer) == "" {
		return false
	}
	cleanAnswer := strings.ToLower(strings.TrimSpace(studentAnswer))

	for _, expected := range expectedAnswers {
		cleanExpected := strings.ToLower(strings.TrimSpace(expected))

		if cleanAnswer == cleanExpected {
			return true
		}

		if normalizeAlnum(cleanAnswer) == normalizeAlnum(cleanExpected) && normalizeAlnum(cleanExpected) != "" {
			return true
		}

		answerWords := strings.Fields(cleanAnswer)
		expectedWords := strings.Fields(cleanExpected)
		if len(expectedWords) > 0 && len(expectedWords) <= 3 {
			all := true
			for _, w := range expectedWords {
				found := false
				for _, aw := range answerWords {
					if strings.Contains(aw, w) || strings.Contains(w, aw) {
						found = true
						break
					}
				}
				if !found {
					all = false
					break
				}
			}
			if all {
				return true
			}
		}
	}
	return false
}

func normalizeAlnum(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return strings.ToLower(b.String())
}

// ScoreSession points obtenus sur une session d'examen
func ScoreSession(exercises []ExamExercise, answers map[uint]string) (current, total int) {
	for _, ex := range exercises {
		total += ex.Points
		if ValidateAnswer(answers[ex.ID], ex.ExpectedAnswers) {
			current += ex.Points
		}
	}
	return current, total
}
