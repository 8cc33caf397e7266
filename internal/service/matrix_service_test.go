package service

import (
	"errors"
	"math"
	"numiviz_backend/internal/util"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func checkSolution(t *testing.T, got, want []float64, tol float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("taille de la solution: %d au lieu de %d", len(got), len(want))
	}
	for i := range want {
		if !almostEqual(got[i], want[i], tol) {
			t.Fatalf("x[%d] = %v, attendu %v", i, got[i], want[i])
		}
	}
}

func TestSolveSystem_Gauss2x2(t *testing.T) {
	s := NewMatrixService()
	// 2x + y = 3 ; x + 3y = 5 → x = 0.8, y = 1.4
	res, err := s.SolveSystem([][]float64{{2, 1}, {1, 3}}, []float64{3, 5}, "gauss")
	if err != nil {
		t.Fatalf("SolveSystem: %v", err)
	}
	checkSolution(t, res.Solution, []float64{0.8, 1.4}, 1e-10)
	if !res.Converged {
		t.Fatalf("gauss doit marquer converged")
	}
	if len(res.Steps) == 0 {
		t.Fatalf("les étapes doivent être tracées")
	}
}

func TestSolveSystem_GaussPartialPivot(t *testing.T) {
	s := NewMatrixService()
	// pivot nul en tête, l'échange de lignes est obligatoire
	res, err := s.SolveSystem([][]float64{{0, 1}, {1, 0}}, []float64{2, 3}, "")
	if err != nil {
		t.Fatalf("SolveSystem: %v", err)
	}
	checkSolution(t, res.Solution, []float64{3, 2}, 1e-12)
}

func TestSolveSystem_GaussSingular(t *testing.T) {
	s := NewMatrixService()
	_, err := s.SolveSystem([][]float64{{1, 2}, {2, 4}}, []float64{1, 2}, "gauss")
	if !errors.Is(err, util.ErrSingularMatrix) {
		t.Fatalf("attendu ErrSingularMatrix, obtenu %v", err)
	}
}

func TestSolveSystem_LU(t *testing.T) {
	s := NewMatrixService()
	a := [][]float64{{4, 3}, {6, 3}}
	res, err := s.SolveSystem(a, []float64{10, 12}, "lu")
	if err != nil {
		t.Fatalf("SolveSystem: %v", err)
	}

	n := len(a)
	if len(res.L) != n || len(res.U) != n {
		t.Fatalf("L et U doivent être renvoyées")
	}
	for i := 0; i < n; i++ {
		if res.L[i][i] != 1 {
			t.Fatalf("L doit avoir une diagonale unité (Doolittle): L[%d][%d]=%v", i, i, res.L[i][i])
		}
		for j := i + 1; j < n; j++ {
			if res.L[i][j] != 0 {
				t.Fatalf("L doit être triangulaire inférieure")
			}
		}
		for j := 0; j < i; j++ {
			if res.U[i][j] != 0 {
				t.Fatalf("U doit être triangulaire supérieure")
			}
		}
	}

	// LU = A
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			sum := 0.0
			for k := 0; k < n; k++ {
				sum += res.L[i][k] * res.U[k][j]
			}
			if !almostEqual(sum, a[i][j], 1e-10) {
				t.Fatalf("(LU)[%d][%d] = %v, attendu %v", i, j, sum, a[i][j])
			}
		}
	}

	checkSolution(t, res.Solution, []float64{1, 2}, 1e-10)
}

func TestSolveSystem_IterativeConverges(t *testing.T) {
	s := NewMatrixService()
	// système à diagonale dominante, les deux méthodes convergent
	a := [][]float64{{10, -1, 2}, {-1, 11, -1}, {2, -1, 10}}
	b := []float64{6, 25, -11}

	for _, method := range []string{"jacobi", "gauss_seidel"} {
		res, err := s.SolveSystem(a, b, method)
		if err != nil {
			t.Fatalf("%s: %v", method, err)
		}
		if !res.Converged {
			t.Fatalf("%s: doit converger sur une diagonale dominante", method)
		}
		if res.Iterations == 0 || res.Iterations > IterMaxIterations {
			t.Fatalf("%s: itérations %d", method, res.Iterations)
		}
		if len(res.Convergence) != res.Iterations {
			t.Fatalf("%s: une erreur par itération attendue", method)
		}
		last := res.Convergence[len(res.Convergence)-1]
		if last >= IterTolerance {
			t.Fatalf("%s: erreur finale %v au-dessus de la tolérance", method, last)
		}

		// vérifie Ax = b
		for i := range a {
			sum := 0.0
			for j := range a[i] {
				sum += a[i][j] * res.Solution[j]
			}
			if !almostEqual(sum, b[i], 1e-6) {
				t.Fatalf("%s: (Ax)[%d] = %v, attendu %v", method, i, sum, b[i])
			}
		}
	}
}

func TestSolveSystem_IterativeZeroDiagonal(t *testing.T) {
	s := NewMatrixService()
	_, err := s.SolveSystem([][]float64{{0, 1}, {1, 1}}, []float64{1, 2}, "jacobi")
	if !errors.Is(err, util.ErrSingularMatrix) {
		t.Fatalf("diagonale nulle: attendu ErrSingularMatrix, obtenu %v", err)
	}
}

func TestSolveSystem_DimensionChecks(t *testing.T) {
	s := NewMatrixService()
	if _, err := s.SolveSystem(nil, nil, "gauss"); !errors.Is(err, util.ErrDimensionMismatch) {
		t.Fatalf("système vide: %v", err)
	}
	if _, err := s.SolveSystem([][]float64{{1, 2}, {3, 4}}, []float64{1}, "gauss"); !errors.Is(err, util.ErrDimensionMismatch) {
		t.Fatalf("b trop court: %v", err)
	}
	if _, err := s.SolveSystem([][]float64{{1, 2}, {3}}, []float64{1, 2}, "gauss"); !errors.Is(err, util.ErrInvalidMatrix) {
		t.Fatalf("ligne irrégulière: %v", err)
	}
	if _, err := s.SolveSystem([][]float64{{1}}, []float64{1}, "cramer"); err == nil {
		t.Fatalf("méthode inconnue acceptée")
	}
}

func TestConvergenceCurves(t *testing.T) {
	s := NewMatrixService()
	a := [][]float64{{4, 1}, {1, 3}}
	b := []float64{1, 2}

	jacobi, seidel, err := s.ConvergenceCurves(a, b)
	if err != nil {
		t.Fatalf("ConvergenceCurves: %v", err)
	}
	if len(jacobi) == 0 || len(seidel) == 0 {
		t.Fatalf("les deux courbes doivent être renseignées")
	}
	// Gauss-Seidel converge au moins aussi vite que Jacobi sur ce système
	if len(seidel) > len(jacobi) {
		t.Fatalf("Gauss-Seidel plus lent que Jacobi: %d > %d", len(seidel), len(jacobi))
	}
}

func TestDeterminant(t *testing.T) {
	s := NewMatrixService()
	det, err := s.Determinant([][]float64{{1, 2}, {3, 4}})
	if err != nil {
		t.Fatalf("Determinant: %v", err)
	}
	if !almostEqual(det, -2, 1e-10) {
		t.Fatalf("det = %v, attendu -2", det)
	}

	if _, err := s.Determinant([][]float64{{1, 2, 3}, {4, 5, 6}}); !errors.Is(err, util.ErrInvalidMatrix) {
		t.Fatalf("matrice non carrée: %v", err)
	}
}

func TestInverse(t *testing.T) {
	s := NewMatrixService()
	inv, err := s.Inverse([][]float64{{4, 7}, {2, 6}})
	if err != nil {
		t.Fatalf("Inverse: %v", err)
	}
	want := [][]float64{{0.6, -0.7}, {-0.2, 0.4}}
	for i := range want {
		for j := range want[i] {
			if !almostEqual(inv[i][j], want[i][j], 1e-10) {
				t.Fatalf("inv[%d][%d] = %v, attendu %v", i, j, inv[i][j], want[i][j])
			}
		}
	}

	if _, err := s.Inverse([][]float64{{1, 2}, {2, 4}}); !errors.Is(err, util.ErrSingularMatrix) {
		t.Fatalf("matrice singulière: %v", err)
	}
}

func TestTranspose(t *testing.T) {
	s := NewMatrixService()
	tr, err := s.Transpose([][]float64{{1, 2, 3}, {4, 5, 6}})
	if err != nil {
		t.Fatalf("Transpose: %v", err)
	}
	if len(tr) != 3 || len(tr[0]) != 2 {
		t.Fatalf("dimensions: %dx%d", len(tr), len(tr[0]))
	}
	if tr[2][1] != 6 || tr[0][1] != 4 {
		t.Fatalf("transposée incorrecte: %v", tr)
	}
}

func TestProduct(t *testing.T) {
	s := NewMatrixService()
	p, err := s.Product([][]float64{{1, 2}}, [][]float64{{3}, {4}})
	if err != nil {
		t.Fatalf("Product: %v", err)
	}
	if len(p) != 1 || len(p[0]) != 1 || p[0][0] != 11 {
		t.Fatalf("produit: %v", p)
	}

	_, err = s.Product([][]float64{{1, 2}}, [][]float64{{3, 4}})
	if !errors.Is(err, util.ErrDimensionMismatch) {
		t.Fatalf("dimensions incompatibles: %v", err)
	}
}

func TestNorm(t *testing.T) {
	s := NewMatrixService()
	m := [][]float64{{3, 0}, {0, 4}}

	cases := []struct {
		normType string
		want     float64
	}{
		{"1", 4},
		{"inf", 4},
		{"fro", 5},
		{"", 5},
		{"2", 4},
	}
	for _, tc := range cases {
		got, err := s.Norm(m, tc.normType)
		if err != nil {
			t.Fatalf("Norm(%q): %v", tc.normType, err)
		}
		if !almostEqual(got, tc.want, 1e-10) {
			t.Fatalf("Norm(%q) = %v, attendu %v", tc.normType, got, tc.want)
		}
	}

	if _, err := s.Norm(m, "max"); err == nil {
		t.Fatalf("norme inconnue acceptée")
	}
}
