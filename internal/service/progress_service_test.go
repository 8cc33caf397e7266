package service

import (
	"numiviz_backend/internal/model"
	"testing"
	"time"
)

func TestCanAdvance(t *testing.T) {
	cases := []struct {
		name     string
		role     model.UserRole
		hasManim bool
		watched  float64
		want     bool
	}{
		{"professeur passe toujours", model.Professeur, true, 0, true},
		{"admin passe toujours", model.Admin, true, 0, true},
		{"sans animation, pas de verrou", model.Etudiant, false, 0, true},
		{"étudiant sous le seuil", model.Etudiant, true, 89.9, false},
		{"étudiant au seuil", model.Etudiant, true, 90, true},
		{"étudiant au-dessus", model.Etudiant, true, 100, true},
	}
	for _, tc := range cases {
		if got := CanAdvance(tc.role, tc.hasManim, tc.watched); got != tc.want {
			t.Fatalf("%s: attendu %v, obtenu %v", tc.name, tc.want, got)
		}
	}
}

func newTestSink(start time.Time) (*ProgressSink, *time.Time) {
	clock := start
	s := NewProgressSink()
	s.now = func() time.Time { return clock }
	return s, &clock
}

func TestProgressSink_FirstReportStored(t *testing.T) {
	s, _ := newTestSink(time.Unix(1000, 0))
	value, store := s.Accept(1, 1, 4)
	if !store || value != 4 {
		t.Fatalf("premier rapport attendu stocké: value=%v store=%v", value, store)
	}
}

func TestProgressSink_CompletionRoundsUp(t *testing.T) {
	s, _ := newTestSink(time.Unix(1000, 0))
	value, store := s.Accept(1, 1, 99.3)
	if !store || value != 100 {
		t.Fatalf(">=99 doit être arrondi à 100: value=%v store=%v", value, store)
	}
}

func TestProgressSink_NeverRegresses(t *testing.T) {
	s, clock := newTestSink(time.Unix(1000, 0))
	s.Accept(1, 1, 50)
	*clock = clock.Add(time.Minute)

	value, store := s.Accept(1, 1, 30)
	if store {
		t.Fatalf("une valeur plus basse ne doit pas être stockée")
	}
	if value != 50 {
		t.Fatalf("la dernière valeur stockée fait foi: %v", value)
	}
}

func TestProgressSink_TierCrossingBypassesThrottle(t *testing.T) {
	s, clock := newTestSink(time.Unix(1000, 0))
	s.Accept(1, 1, 8)
	*clock = clock.Add(200 * time.Millisecond)

	// franchit le palier des 10% bien avant la fenêtre de 2s
	value, store := s.Accept(1, 1, 12)
	if !store || value != 12 {
		t.Fatalf("le franchissement de palier doit écrire tout de suite: value=%v store=%v", value, store)
	}
}

func TestProgressSink_ThrottleWithinWindow(t *testing.T) {
	s, clock := newTestSink(time.Unix(1000, 0))
	s.Accept(1, 1, 11)
	*clock = clock.Add(500 * time.Millisecond)

	// même palier, moins de 2s: absorbé
	if _, store := s.Accept(1, 1, 13); store {
		t.Fatalf("rapport dans la fenêtre de 2s sans palier, doit être absorbé")
	}

	*clock = clock.Add(2 * time.Second)
	value, store := s.Accept(1, 1, 14)
	if !store || value != 14 {
		t.Fatalf("après la fenêtre le rapport doit passer: value=%v store=%v", value, store)
	}
}

func TestProgressSink_PrimeBlocksRegressionAfterRestart(t *testing.T) {
	// sink vide (redémarrage), 80% déjà en base: un rapport à 20% ne doit
	// pas repasser devant la valeur stockée
	s, _ := newTestSink(time.Unix(1000, 0))
	if s.Tracked(1, 1) {
		t.Fatalf("le couple ne doit pas encore être suivi")
	}
	s.Prime(1, 1, 80)
	if !s.Tracked(1, 1) {
		t.Fatalf("le couple doit être suivi après amorçage")
	}

	value, store := s.Accept(1, 1, 20)
	if store {
		t.Fatalf("un rapport sous la valeur en base ne doit pas être stocké")
	}
	if value != 80 {
		t.Fatalf("la valeur en base fait foi: %v", value)
	}

	// au-dessus de la valeur amorcée, le flux reprend normalement
	value, store = s.Accept(1, 1, 92)
	if !store || value != 92 {
		t.Fatalf("une progression réelle doit passer: value=%v store=%v", value, store)
	}
}

func TestProgressSink_PrimeNeverLowers(t *testing.T) {
	s, _ := newTestSink(time.Unix(1000, 0))
	s.Accept(1, 1, 60)

	s.Prime(1, 1, 30)
	value, store := s.Accept(1, 1, 50)
	if store || value != 60 {
		t.Fatalf("l'amorçage ne doit jamais abaisser l'entrée: value=%v store=%v", value, store)
	}
}

func TestProgressSink_IndependentPerUserAndLesson(t *testing.T) {
	s, _ := newTestSink(time.Unix(1000, 0))
	s.Accept(1, 1, 50)

	// autre utilisateur, même leçon: compteur indépendant
	if _, store := s.Accept(2, 1, 5); !store {
		t.Fatalf("les entrées doivent être séparées par utilisateur")
	}
	// même utilisateur, autre leçon
	if _, store := s.Accept(1, 2, 5); !store {
		t.Fatalf("les entrées doivent être séparées par leçon")
	}
}
