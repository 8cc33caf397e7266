package service

import "testing"

func TestValidateAnswer_ExactMatch(t *testing.T) {
	if !ValidateAnswer("  X = 2 ", []string{"x = 2"}) {
		t.Fatalf("la comparaison doit ignorer la casse et les espaces aux bords")
	}
}

func TestValidateAnswer_NormalizedAlnum(t *testing.T) {
	// même contenu alphanumérique, ponctuation et espaces différents
	if !ValidateAnswer("x=2", []string{"x = 2"}) {
		t.Fatalf("x=2 doit valoir x = 2")
	}
	if !ValidateAnswer("(1; 2)", []string{"1,2"}) {
		t.Fatalf("la ponctuation ne doit pas compter")
	}
}

func TestValidateAnswer_KeywordOverlapShortExpected(t *testing.T) {
	// réponse attendue de 3 mots au plus: recouvrement de mots-clés
	if !ValidateAnswer("la méthode converge vers la solution", []string{"converge solution"}) {
		t.Fatalf("tous les mots-clés sont présents")
	}
	if ValidateAnswer("la méthode diverge", []string{"converge solution"}) {
		t.Fatalf("mot-clé manquant, doit être faux")
	}
}

func TestValidateAnswer_NoKeywordFallbackForLongExpected(t *testing.T) {
	expected := []string{"le pivot maximal est choisi dans la colonne"}
	if ValidateAnswer("pivot maximal colonne", expected) {
		t.Fatalf("au-delà de trois mots attendus, pas de recouvrement partiel")
	}
}

func TestValidateAnswer_EmptyAlwaysFalse(t *testing.T) {
	if ValidateAnswer("   ", []string{"x"}) {
		t.Fatalf("réponse vide toujours fausse")
	}
	if ValidateAnswer("", nil) {
		t.Fatalf("réponse vide toujours fausse")
	}
}

func TestScoreSession_SumsPoints(t *testing.T) {
	exercises := []ExamExercise{
		{ID: 1, ExpectedAnswers: []string{"x = 2"}, Points: 3},
		{ID: 2, ExpectedAnswers: []string{"converge"}, Points: 2},
		{ID: 3, ExpectedAnswers: []string{"det = 0"}, Points: 5},
	}
	answers := map[uint]string{
		1: "x=2",
		2: "ça diverge",
		// 3 sans réponse
	}

	current, total := ScoreSession(exercises, answers)
	if total != 10 {
		t.Fatalf("total attendu 10, obtenu %d", total)
	}
	if current != 3 {
		t.Fatalf("points attendus 3, obtenus %d", current)
	}
}
