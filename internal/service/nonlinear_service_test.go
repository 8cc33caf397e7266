package service

import (
	"errors"
	"math"
	"numiviz_backend/internal/util"
	"testing"
)

func TestSolve_NewtonSqrt2(t *testing.T) {
	s := NewNonlinearService()
	res, err := s.Solve("x*x - 2", 1, "newton")
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !res.Converged {
		t.Fatalf("Newton doit converger sur x²−2 depuis 1")
	}
	if !almostEqual(res.Root, math.Sqrt2, 1e-8) {
		t.Fatalf("racine %v, attendu %v", res.Root, math.Sqrt2)
	}
	if res.Iterations == 0 || len(res.Steps) != res.Iterations {
		t.Fatalf("une étape par itération attendue: %d étapes, %d itérations", len(res.Steps), res.Iterations)
	}
}

func TestSolve_DefaultMethodIsNewton(t *testing.T) {
	s := NewNonlinearService()
	res, err := s.Solve("x*x - 2", 1, "")
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !almostEqual(res.Root, math.Sqrt2, 1e-8) {
		t.Fatalf("racine %v", res.Root)
	}
}

func TestSolve_NewtonFlatDerivative(t *testing.T) {
	s := NewNonlinearService()
	// dérivée nulle au point de départ
	_, err := s.Solve("x*x + 1", 0, "newton")
	if !errors.Is(err, util.ErrDivergence) {
		t.Fatalf("attendu ErrDivergence, obtenu %v", err)
	}
}

func TestSolve_NewtonDiverges(t *testing.T) {
	s := NewNonlinearService()
	// Newton sur atan diverge pour un point de départ trop loin
	_, err := s.Solve("atan(x)", 2, "newton")
	if !errors.Is(err, util.ErrDivergence) {
		t.Fatalf("attendu ErrDivergence, obtenu %v", err)
	}
}

func TestSolve_FixedPoint(t *testing.T) {
	s := NewNonlinearService()
	// g(x) = x − f(x) = 0.1x, contraction vers 0
	res, err := s.Solve("0.9*x", 1, "fixed_point")
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !res.Converged {
		t.Fatalf("le point fixe doit converger")
	}
	if math.Abs(res.Root) > 1e-9 {
		t.Fatalf("racine %v, attendu 0", res.Root)
	}
}

func TestSolve_BisectionExactRoot(t *testing.T) {
	s := NewNonlinearService()
	// intervalle [0, 2] autour de x0=1, racine au milieu dès la 1re itération
	res, err := s.Solve("x*x - 1", 1, "bisection")
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !res.Converged || res.Root != 1 {
		t.Fatalf("racine exacte attendue: root=%v converged=%v", res.Root, res.Converged)
	}
}

func TestSolve_BisectionNarrowsInterval(t *testing.T) {
	s := NewNonlinearService()
	res, err := s.Solve("x*x - 2", 1, "bisection")
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !almostEqual(res.Root, math.Sqrt2, 1e-8) {
		t.Fatalf("racine %v, attendu %v", res.Root, math.Sqrt2)
	}
	// la largeur de l'intervalle décroît de moitié à chaque itération
	for i := 1; i < len(res.Steps); i++ {
		if res.Steps[i].Error >= res.Steps[i-1].Error {
			t.Fatalf("largeur non décroissante à l'itération %d", i+1)
		}
	}
}

func TestSolve_BisectionRequiresSignChange(t *testing.T) {
	s := NewNonlinearService()
	_, err := s.Solve("x*x + 1", 0, "bisection")
	if !errors.Is(err, util.ErrNoSignChange) {
		t.Fatalf("attendu ErrNoSignChange, obtenu %v", err)
	}
}

func TestSolve_InvalidExpression(t *testing.T) {
	s := NewNonlinearService()
	if _, err := s.Solve("x +* 2", 1, "newton"); err == nil {
		t.Fatalf("expression invalide acceptée")
	}
}

func TestSolve_UnknownMethod(t *testing.T) {
	s := NewNonlinearService()
	if _, err := s.Solve("x", 1, "secante"); err == nil {
		t.Fatalf("méthode inconnue acceptée")
	}
}

func TestCompileFunc_MathEnv(t *testing.T) {
	f, err := CompileFunc("sin(pi/2) + cos(0) + sqrt(4) - x")
	if err != nil {
		t.Fatalf("CompileFunc: %v", err)
	}
	v, err := f(4)
	if err != nil {
		t.Fatalf("évaluation: %v", err)
	}
	if !almostEqual(v, 0, 1e-12) {
		t.Fatalf("f(4) = %v, attendu 0", v)
	}
}
