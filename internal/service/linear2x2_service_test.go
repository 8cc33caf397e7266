package service

import "testing"

func TestParseLine(t *testing.T) {
	cases := []struct {
		input string
		m, b  float64
		ok    bool
	}{
		{"y = 2x + 3", 2, 3, true},
		{"y=-x+1", -1, 1, true},
		{"y=x", 1, 0, true},
		{"y=-x", -1, 0, true},
		{"y = 0.5x - 2", 0.5, -2, true},
		{"y=5", 0, 5, true},
		{"y=-3.25", 0, -3.25, true},
		{"Y = 2 * X + 1", 2, 1, true},
		{"y=+4x+0", 4, 0, true},
		{"y=x5", 0, 0, false}, // b non signé après le terme en x
		{"y=", 0, 0, false},
		{"2x+3", 0, 0, false},
		{"y=2x+3z", 0, 0, false},
		{"n'importe quoi", 0, 0, false},
	}

	for _, tc := range cases {
		c, ok := ParseLine(tc.input)
		if ok != tc.ok {
			t.Fatalf("%q: ok=%v, attendu %v", tc.input, ok, tc.ok)
		}
		if !tc.ok {
			continue
		}
		if c.M != tc.m || c.B != tc.b {
			t.Fatalf("%q: (m=%v, b=%v), attendu (m=%v, b=%v)", tc.input, c.M, c.B, tc.m, tc.b)
		}
	}
}

func TestSolveLines_Unique(t *testing.T) {
	res := solveLines("y=2x+1", "y=-x+4")
	if res.Type != "unique" {
		t.Fatalf("type %q", res.Type)
	}
	if res.X == nil || res.Y == nil {
		t.Fatalf("point d'intersection manquant")
	}
	if !almostEqual(*res.X, 1, 1e-12) || !almostEqual(*res.Y, 3, 1e-12) {
		t.Fatalf("intersection (%v, %v), attendu (1, 3)", *res.X, *res.Y)
	}
	if res.Line1 == nil || res.Line2 == nil {
		t.Fatalf("les coefficients analysés doivent être renvoyés")
	}
}

func TestSolveLines_Parallel(t *testing.T) {
	res := solveLines("y=2x+1", "y=2x-3")
	if res.Type != "none" {
		t.Fatalf("droites parallèles: type %q", res.Type)
	}
	if res.X != nil || res.Y != nil {
		t.Fatalf("pas de point pour des droites parallèles")
	}
}

func TestSolveLines_Identical(t *testing.T) {
	res := solveLines("y=2x+1", "y = 2x + 1")
	if res.Type != "infinite" {
		t.Fatalf("droites confondues: type %q", res.Type)
	}
}

func TestSolveLines_Invalid(t *testing.T) {
	res := solveLines("y=2x+1", "pas une droite")
	if res.Type != "invalid" {
		t.Fatalf("type %q", res.Type)
	}
	if res.Line1 != nil || res.Line2 != nil {
		t.Fatalf("aucun coefficient sur une entrée invalide")
	}
}

func TestSolve_HistoryFailureDoesNotBlock(t *testing.T) {
	// sans dépôt d'historique, la résolution répond quand même
	s := NewLinear2x2Service(nil)
	res := s.Solve(1, "y=x", "y=-x+2")
	if res.Type != "unique" {
		t.Fatalf("type %q", res.Type)
	}
	if !almostEqual(*res.X, 1, 1e-12) || !almostEqual(*res.Y, 1, 1e-12) {
		t.Fatalf("intersection (%v, %v)", *res.X, *res.Y)
	}
}
