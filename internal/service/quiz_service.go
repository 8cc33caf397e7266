package service

import (
	"encoding/json"
	"fmt"
	"numiviz_backend/internal/model"
	"numiviz_backend/internal/repository"
	"sort"
	"strings"

	"gorm.io/gorm"
)

// Seuil de réussite d'un quiz, en pourcentage
const QuizPassThreshold = 50.0

type QuizService struct {
	QuizRepo *repository.QuizRepository
}

func NewQuizService(quizRepo *repository.QuizRepository) *QuizService {
	return &QuizService{QuizRepo: quizRepo}
}

func (s *QuizService) Get(id uint) (*model.Quiz, error) {
	return s.QuizRepo.FindByID(id)
}

func (s *QuizService) Create(q *model.Quiz) error {
	q.Actif = true
	return s.QuizRepo.Create(q)
}

func (s *QuizService) Update(q *model.Quiz) error {
	return s.QuizRepo.Update(q)
}

func (s *QuizService) Delete(id uint) error {
	return s.QuizRepo.Delete(id)
}

// QuestionAnswer réponse soumise pour une question
type QuestionAnswer struct {
	QuestionID      uint              `json:"question_id"`
	SelectedAnswers []json.RawMessage `json:"selected_answers"`
}

// SubmitRequest corps de POST /quizzes/submit
type SubmitRequest struct {
	QuizID     uint             `json:"quiz_id" binding:"required"`
	Questions  []QuestionAnswer `json:"questions"`
	IsRemedial bool             `json:"is_remedial"`
}

// SubmitResult résultat d'une tentative
type SubmitResult struct {
	Score          float64 `json:"score"` // pourcentage 0..100
	Correct        int     `json:"correct"`
	Total          int     `json:"total"`
	Passed         bool    `json:"passed"`
	RemedialQuizID *uint   `json:"remedial_quiz_id,omitempty"`
}

// Submit corrige une tentative et la persiste. Une question est juste si
// l'ensemble des réponses choisies est exactement l'ensemble des bonnes
// réponses. Sous le seuil sur un quiz normal, l'id du quiz de rattrapage
// du module est joint à la réponse s'il en existe un.
func (s *QuizService) Submit(userID uint, req *SubmitRequest) (*SubmitResult, error) {
	quiz, err := s.QuizRepo.FindByID(req.QuizID)
	if err != nil {
		return nil, err
	}

	correct, total := GradeSubmission(quiz.Questions, req.Questions)
	score := 0.0
	if total > 0 {
		score = float64(correct) / float64(total) * 100
	}
	passed := score >= QuizPassThreshold

	details, _ := json.Marshal(req.Questions)
	record := &model.ScoreQuiz{
		IDQuiz:        quiz.ID,
		IDUtilisateur: userID,
		Score:         score,
		Total:         total,
		IsRemedial:    req.IsRemedial,
		Details:       details,
	}
	if err := s.QuizRepo.SaveScore(record); err != nil {
		return nil, err
	}

	result := &SubmitResult{
		Score:   score,
		Correct: correct,
		Total:   total,
		Passed:  passed,
	}

	if !passed && !req.IsRemedial {
		remedial, err := s.QuizRepo.FindRemedialByModule(quiz.IDModule)
		if err == nil {
			result.RemedialQuizID = &remedial.ID
		} else if err != gorm.ErrRecordNotFound {
			return nil, err
		}
	}

	return result, nil
}

// GradeSubmission corrige question par question, par égalité d'ensembles
func GradeSubmission(questions []model.QuizQuestion, answers []QuestionAnswer) (correct, total int) {
	byID := make(map[uint][]json.RawMessage, len(answers))
	for _, a := range answers {
		byID[a.QuestionID] = a.SelectedAnswers
	}

	total = len(questions)
	for _, q := range questions {
		var expected []json.RawMessage
		if len(q.BonnesReponses) > 0 {
			// une valeur scalaire vaut un singleton
			if err := json.Unmarshal(q.BonnesReponses, &expected); err != nil {
				expected = []json.RawMessage{q.BonnesReponses}
			}
		}
		if answerSetEqual(byID[q.ID], expected) {
			correct++
		}
	}
	return correct, total
}

func answerSetEqual(got, want []json.RawMessage) bool {
	if len(want) == 0 {
		return false
	}
	gs := canonicalSet(got)
	ws := canonicalSet(want)
	if len(gs) != len(ws) {
		return false
	}
	for i := range gs {
		if gs[i] != ws[i] {
			return false
		}
	}
	return true
}

func canonicalSet(raws []json.RawMessage) []string {
	set := make(map[string]struct{}, len(raws))
	for _, r := range raws {
		var v interface{}
		if err := json.Unmarshal(r, &v); err != nil {
			set[strings.TrimSpace(string(r))] = struct{}{}
			continue
		}
		set[fmt.Sprintf("%v", v)] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// CheckAnswer correction immédiate côté client d'une question embarquée
// dans un bloc quiz. Une réponse vide est toujours fausse; mcq compare
// les index, bool compare après coercition en chaîne, text compare après
// trim insensible à la casse.
func CheckAnswer(q model.QuizBlockQuestion, answer interface{}) bool {
	if answer == nil {
		return false
	}
	if s, ok := answer.(string); ok && s == "" {
		return false
	}

	switch q.Type {
	case "mcq":
		return coerceString(answer) == rawToString(q.Correct)
	case "bool":
		return coerceString(answer) == rawToString(q.Correct)
	case "text":
		expected := strings.ToLower(strings.TrimSpace(rawToString(q.Correct)))
		got := strings.ToLower(strings.TrimSpace(coerceString(answer)))
		return got == expected
	}
	return false
}

func coerceString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		// json décode les nombres en float64; les index restent entiers
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func rawToString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return strings.TrimSpace(string(raw))
	}
	return coerceString(v)
}

// UnlockedQuiz quiz d'un module avec son état de déverrouillage
type UnlockedQuiz struct {
	Quiz      model.Quiz `json:"quiz"`
	Unlocked  bool       `json:"unlocked"`
	BestScore *float64   `json:"best_score,omitempty"`
}

// QuizzesForModule quiz dans l'ordre, chacun déverrouillé seulement si le
// précédent a été réussi au seuil
func (s *QuizService) QuizzesForModule(moduleID, userID uint) ([]UnlockedQuiz, error) {
	quizzes, err := s.QuizRepo.FindByModule(moduleID)
	if err != nil {
		return nil, err
	}

	out := make([]UnlockedQuiz, 0, len(quizzes))
	previousPassed := true // le premier quiz est toujours ouvert
	for _, q := range quizzes {
		uq := UnlockedQuiz{Quiz: q, Unlocked: previousPassed}
		best, err := s.QuizRepo.BestScoreByQuiz(userID, q.ID)
		if err == nil {
			uq.BestScore = &best.Score
			previousPassed = best.Score >= QuizPassThreshold
		} else if err == gorm.ErrRecordNotFound {
			previousPassed = false
		} else {
			return nil, err
		}
		out = append(out, uq)
	}
	return out, nil
}

// ScoresByUser historique des tentatives d'un utilisateur
func (s *QuizService) ScoresByUser(userID uint) ([]model.ScoreQuiz, error) {
	return s.QuizRepo.ScoresByUser(userID)
}
