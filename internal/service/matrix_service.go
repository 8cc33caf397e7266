package service

import (
	"fmt"
	"math"
	"numiviz_backend/internal/util"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Paramètres des méthodes itératives
const (
	IterMaxIterations = 50
	IterTolerance     = 1e-8
)

// MatrixService opérations matricielles et résolution de systèmes
// linéaires, avec trace des étapes pour l'affichage pédagogique
type MatrixService struct{}

func NewMatrixService() *MatrixService {
	return &MatrixService{}
}

func toDense(m [][]float64) (*mat.Dense, error) {
	rows := len(m)
	if rows == 0 {
		return nil, util.ErrInvalidMatrix
	}
	cols := len(m[0])
	if cols == 0 {
		return nil, util.ErrInvalidMatrix
	}
	data := make([]float64, 0, rows*cols)
	for _, row := range m {
		if len(row) != cols {
			return nil, util.ErrInvalidMatrix
		}
		data = append(data, row...)
	}
	return mat.NewDense(rows, cols, data), nil
}

func fromDense(d mat.Matrix) [][]float64 {
	rows, cols := d.Dims()
	out := make([][]float64, rows)
	for i := 0; i < rows; i++ {
		out[i] = make([]float64, cols)
		for j := 0; j < cols; j++ {
			out[i][j] = d.At(i, j)
		}
	}
	return out
}

func (s *MatrixService) Determinant(m [][]float64) (float64, error) {
	d, err := toDense(m)
	if err != nil {
		return 0, err
	}
	r, c := d.Dims()
	if r != c {
		return 0, util.ErrInvalidMatrix
	}
	return mat.Det(d), nil
}

func (s *MatrixService) Inverse(m [][]float64) ([][]float64, error) {
	d, err := toDense(m)
	if err != nil {
		return nil, err
	}
	r, c := d.Dims()
	if r != c {
		return nil, util.ErrInvalidMatrix
	}
	var inv mat.Dense
	if err := inv.Inverse(d); err != nil {
		return nil, util.ErrSingularMatrix
	}
	return fromDense(&inv), nil
}

func (s *MatrixService) Transpose(m [][]float64) ([][]float64, error) {
	d, err := toDense(m)
	if err != nil {
		return nil, err
	}
	return fromDense(d.T()), nil
}

// Norm normes usuelles: "1", "2", "inf", "fro"
func (s *MatrixService) Norm(m [][]float64, normType string) (float64, error) {
	d, err := toDense(m)
	if err != nil {
		return 0, err
	}
	switch normType {
	case "1":
		return mat.Norm(d, 1), nil
	case "inf":
		return mat.Norm(d, math.Inf(1)), nil
	case "fro", "":
		return mat.Norm(d, 2), nil
	case "2":
		// norme spectrale: plus grande valeur singulière
		var svd mat.SVD
		if ok := svd.Factorize(d, mat.SVDNone); !ok {
			return 0, util.ErrInvalidMatrix
		}
		values := svd.Values(nil)
		return values[0], nil
	}
	return 0, fmt.Errorf("norme inconnue: %q", normType)
}

func (s *MatrixService) Product(a, b [][]float64) ([][]float64, error) {
	da, err := toDense(a)
	if err != nil {
		return nil, err
	}
	db, err := toDense(b)
	if err != nil {
		return nil, err
	}
	_, ac := da.Dims()
	br, _ := db.Dims()
	if ac != br {
		return nil, util.ErrDimensionMismatch
	}
	var prod mat.Dense
	prod.Mul(da, db)
	return fromDense(&prod), nil
}

// SolveResult sortie d'une résolution, avec les étapes intermédiaires
type SolveResult struct {
	Solution    []float64   `json:"solution,omitempty"`
	Steps       []string    `json:"steps"`
	Convergence []float64   `json:"convergence,omitempty"` // erreur par itération
	Converged   bool        `json:"converged"`
	Iterations  int         `json:"iterations,omitempty"`
	L           [][]float64 `json:"l,omitempty"`
	U           [][]float64 `json:"u,omitempty"`
}

// SolveSystem résout Ax=b par la méthode demandée:
// gauss | lu | jacobi | gauss_seidel
func (s *MatrixService) SolveSystem(a [][]float64, b []float64, method string) (*SolveResult, error) {
	n := len(a)
	if n == 0 || len(b) != n {
		return nil, util.ErrDimensionMismatch
	}
	for _, row := range a {
		if len(row) != n {
			return nil, util.ErrInvalidMatrix
		}
	}

	switch method {
	case "gauss", "":
		return gaussElimination(a, b)
	case "lu":
		return luDecomposition(a, b)
	case "jacobi":
		return iterativeSolve(a, b, false)
	case "gauss_seidel":
		return iterativeSolve(a, b, true)
	}
	return nil, fmt.Errorf("méthode inconnue: %q", method)
}

// ConvergenceCurves courbes d'erreur de Jacobi et Gauss-Seidel sur le
// même système, pour la comparaison graphique
func (s *MatrixService) ConvergenceCurves(a [][]float64, b []float64) (jacobi, gaussSeidel []float64, err error) {
	rj, err := s.SolveSystem(a, b, "jacobi")
	if err != nil {
		return nil, nil, err
	}
	rg, err := s.SolveSystem(a, b, "gauss_seidel")
	if err != nil {
		return nil, nil, err
	}
	return rj.Convergence, rg.Convergence, nil
}

func cloneSystem(a [][]float64, b []float64) ([][]float64, []float64) {
	n := len(a)
	ca := make([][]float64, n)
	for i := range a {
		ca[i] = append([]float64(nil), a[i]...)
	}
	return ca, append([]float64(nil), b...)
}

func formatRow(row []float64) string {
	parts := make([]string, len(row))
	for i, v := range row {
		parts[i] = fmt.Sprintf("%.4g", v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatAugmented(a [][]float64, b []float64) string {
	rows := make([]string, len(a))
	for i := range a {
		rows[i] = formatRow(append(append([]float64(nil), a[i]...), b[i]))
	}
	return strings.Join(rows, " ")
}

func gaussElimination(a0 [][]float64, b0 []float64) (*SolveResult, error) {
	a, b := cloneSystem(a0, b0)
	n := len(a)
	res := &SolveResult{}
	res.Steps = append(res.Steps, "Système initial: "+formatAugmented(a, b))

	for k := 0; k < n-1; k++ {
		// pivot partiel
		pivot := k
		for i := k + 1; i < n; i++ {
			if math.Abs(a[i][k]) > math.Abs(a[pivot][k]) {
				pivot = i
			}
		}
		if math.Abs(a[pivot][k]) < 1e-12 {
			return nil, util.ErrSingularMatrix
		}
		if pivot != k {
			a[k], a[pivot] = a[pivot], a[k]
			b[k], b[pivot] = b[pivot], b[k]
			res.Steps = append(res.Steps, fmt.Sprintf("Échange L%d ↔ L%d", k+1, pivot+1))
		}

		for i := k + 1; i < n; i++ {
			factor := a[i][k] / a[k][k]
			if factor == 0 {
				continue
			}
			for j := k; j < n; j++ {
				a[i][j] -= factor * a[k][j]
			}
			b[i] -= factor * b[k]
			res.Steps = append(res.Steps, fmt.Sprintf("L%d ← L%d − (%.4g)·L%d", i+1, i+1, factor, k+1))
		}
		res.Steps = append(res.Steps, "Étape "+fmt.Sprint(k+1)+": "+formatAugmented(a, b))
	}

	if math.Abs(a[n-1][n-1]) < 1e-12 {
		return nil, util.ErrSingularMatrix
	}

	// remontée
	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := b[i]
		for j := i + 1; j < n; j++ {
			sum -= a[i][j] * x[j]
		}
		x[i] = sum / a[i][i]
	}
	res.Steps = append(res.Steps, "Solution: "+formatRow(x))
	res.Solution = x
	res.Converged = true
	return res, nil
}

// luDecomposition factorisation de Doolittle (L à diagonale unité)
func luDecomposition(a0 [][]float64, b0 []float64) (*SolveResult, error) {
	a, b := cloneSystem(a0, b0)
	n := len(a)

	l := make([][]float64, n)
	u := make([][]float64, n)
	for i := range l {
		l[i] = make([]float64, n)
		u[i] = make([]float64, n)
		l[i][i] = 1
	}

	res := &SolveResult{}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sum := 0.0
			for k := 0; k < i; k++ {
				sum += l[i][k] * u[k][j]
			}
			u[i][j] = a[i][j] - sum
		}
		if math.Abs(u[i][i]) < 1e-12 {
			return nil, util.ErrSingularMatrix
		}
		for j := i + 1; j < n; j++ {
			sum := 0.0
			for k := 0; k < i; k++ {
				sum += l[j][k] * u[k][i]
			}
			l[j][i] = (a[j][i] - sum) / u[i][i]
		}
		res.Steps = append(res.Steps, fmt.Sprintf("Étape %d: U%d=%s L colonne %d calculée", i+1, i+1, formatRow(u[i]), i+1))
	}

	// Ly = b puis Ux = y
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := b[i]
		for j := 0; j < i; j++ {
			sum -= l[i][j] * y[j]
		}
		y[i] = sum
	}
	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := y[i]
		for j := i + 1; j < n; j++ {
			sum -= u[i][j] * x[j]
		}
		x[i] = sum / u[i][i]
	}

	res.Steps = append(res.Steps, "y (Ly=b): "+formatRow(y))
	res.Steps = append(res.Steps, "Solution: "+formatRow(x))
	res.Solution = x
	res.L = l
	res.U = u
	res.Converged = true
	return res, nil
}

// iterativeSolve Jacobi (seidel=false) ou Gauss-Seidel (seidel=true)
func iterativeSolve(a [][]float64, b []float64, seidel bool) (*SolveResult, error) {
	n := len(a)
	for i := 0; i < n; i++ {
		if math.Abs(a[i][i]) < 1e-12 {
			return nil, util.ErrSingularMatrix
		}
	}

	x := make([]float64, n)
	res := &SolveResult{}

	for iter := 1; iter <= IterMaxIterations; iter++ {
		next := make([]float64, n)
		if seidel {
			copy(next, x)
		}
		for i := 0; i < n; i++ {
			sum := b[i]
			for j := 0; j < n; j++ {
				if j == i {
					continue
				}
				if seidel {
					sum -= a[i][j] * next[j]
				} else {
					sum -= a[i][j] * x[j]
				}
			}
			next[i] = sum / a[i][i]
		}

		// erreur en norme infinie entre deux itérés
		errNorm := 0.0
		for i := 0; i < n; i++ {
			if d := math.Abs(next[i] - x[i]); d > errNorm {
				errNorm = d
			}
		}
		x = next
		res.Convergence = append(res.Convergence, errNorm)
		res.Steps = append(res.Steps, fmt.Sprintf("Iter %d: %s (err=%.3e)", iter, formatRow(x), errNorm))
		res.Iterations = iter

		if errNorm < IterTolerance {
			res.Converged = true
			break
		}
	}

	res.Solution = x
	return res, nil
}
