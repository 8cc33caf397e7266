package service

import (
	"encoding/json"
	"numiviz_backend/internal/model"
	"testing"
)

func question(id uint, bonnes string) model.QuizQuestion {
	q := model.QuizQuestion{Texte: "q"}
	q.ID = id
	if bonnes != "" {
		q.BonnesReponses = json.RawMessage(bonnes)
	}
	return q
}

func answer(id uint, raws ...string) QuestionAnswer {
	a := QuestionAnswer{QuestionID: id}
	for _, r := range raws {
		a.SelectedAnswers = append(a.SelectedAnswers, json.RawMessage(r))
	}
	return a
}

func TestGradeSubmission_SetEquality(t *testing.T) {
	questions := []model.QuizQuestion{question(1, `[0, 2]`)}

	cases := []struct {
		name    string
		answers []QuestionAnswer
		correct int
	}{
		{"ordre indifférent", []QuestionAnswer{answer(1, "2", "0")}, 1},
		{"exact", []QuestionAnswer{answer(1, "0", "2")}, 1},
		{"doublons réduits", []QuestionAnswer{answer(1, "0", "2", "2")}, 1},
		{"incomplet", []QuestionAnswer{answer(1, "0")}, 0},
		{"en trop", []QuestionAnswer{answer(1, "0", "1", "2")}, 0},
		{"aucune réponse", nil, 0},
	}

	for _, tc := range cases {
		correct, total := GradeSubmission(questions, tc.answers)
		if total != 1 {
			t.Fatalf("%s: total %d", tc.name, total)
		}
		if correct != tc.correct {
			t.Fatalf("%s: attendu %d juste(s), obtenu %d", tc.name, tc.correct, correct)
		}
	}
}

func TestGradeSubmission_ScalarExpectedIsSingleton(t *testing.T) {
	questions := []model.QuizQuestion{question(1, `"vrai"`)}

	correct, _ := GradeSubmission(questions, []QuestionAnswer{answer(1, `"vrai"`)})
	if correct != 1 {
		t.Fatalf("un scalaire attendu doit valoir un singleton")
	}
	correct, _ = GradeSubmission(questions, []QuestionAnswer{answer(1, `"vrai"`, `"faux"`)})
	if correct != 0 {
		t.Fatalf("une réponse en trop doit être fausse")
	}
}

func TestGradeSubmission_EmptyExpectedNeverCorrect(t *testing.T) {
	questions := []model.QuizQuestion{question(1, "")}
	correct, total := GradeSubmission(questions, []QuestionAnswer{answer(1)})
	if total != 1 || correct != 0 {
		t.Fatalf("sans bonnes réponses rien n'est juste: correct=%d total=%d", correct, total)
	}
}

func TestCheckAnswer_EmptyAlwaysFalse(t *testing.T) {
	q := model.QuizBlockQuestion{Type: "text", Correct: json.RawMessage(`"pivot"`)}
	if CheckAnswer(q, nil) {
		t.Fatalf("nil doit être faux")
	}
	if CheckAnswer(q, "") {
		t.Fatalf("chaîne vide doit être fausse")
	}
}

func TestCheckAnswer_MCQIndexCoercion(t *testing.T) {
	q := model.QuizBlockQuestion{Type: "mcq", Correct: json.RawMessage(`2`)}
	// json décode les nombres en float64
	if !CheckAnswer(q, float64(2)) {
		t.Fatalf("l'index 2 doit être accepté")
	}
	if CheckAnswer(q, float64(1)) {
		t.Fatalf("l'index 1 doit être refusé")
	}
	if !CheckAnswer(q, "2") {
		t.Fatalf("l'index sous forme de chaîne doit être accepté")
	}
}

func TestCheckAnswer_BoolAndText(t *testing.T) {
	b := model.QuizBlockQuestion{Type: "bool", Correct: json.RawMessage(`true`)}
	if !CheckAnswer(b, true) {
		t.Fatalf("bool vrai attendu")
	}
	if CheckAnswer(b, false) {
		t.Fatalf("bool faux refusé")
	}

	txt := model.QuizBlockQuestion{Type: "text", Correct: json.RawMessage(`"Pivot de Gauss"`)}
	if !CheckAnswer(txt, "  pivot de gauss ") {
		t.Fatalf("le texte doit être comparé après trim, sans la casse")
	}
	if CheckAnswer(txt, "pivot") {
		t.Fatalf("réponse partielle refusée")
	}
}

func TestCheckAnswer_UnknownTypeFalse(t *testing.T) {
	q := model.QuizBlockQuestion{Type: "dessin", Correct: json.RawMessage(`"x"`)}
	if CheckAnswer(q, "x") {
		t.Fatalf("type de question inconnu doit être faux")
	}
}
