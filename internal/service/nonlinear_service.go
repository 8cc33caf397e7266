package service

import (
	"fmt"
	"math"
	"numiviz_backend/internal/util"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Paramètres des méthodes de recherche de racine
const (
	RootMaxIterations  = 30
	RootTolerance      = 1e-10
	RootDivergenceBand = 1e6
	derivativeStep     = 1e-6
)

// NonlinearService résolution d'équations f(x)=0 par Newton, point fixe
// et dichotomie. L'expression de f est évaluée via expr avec un
// environnement mathématique restreint.
type NonlinearService struct{}

func NewNonlinearService() *NonlinearService {
	return &NonlinearService{}
}

// mathEnv fonctions autorisées dans les expressions
func mathEnv(x float64) map[string]interface{} {
	return map[string]interface{}{
		"x":     x,
		"pi":    math.Pi,
		"e":     math.E,
		"sin":   math.Sin,
		"cos":   math.Cos,
		"tan":   math.Tan,
		"exp":   math.Exp,
		"log":   math.Log,
		"log10": math.Log10,
		"sqrt":  math.Sqrt,
		"abs":   math.Abs,
		"pow":   math.Pow,
		"atan":  math.Atan,
		"asin":  math.Asin,
		"acos":  math.Acos,
		"sinh":  math.Sinh,
		"cosh":  math.Cosh,
		"tanh":  math.Tanh,
	}
}

// CompileFunc compile une expression en fonction f(x)
func CompileFunc(expression string) (func(float64) (float64, error), error) {
	program, err := expr.Compile(expression, expr.Env(mathEnv(0)), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("expression invalide: %w", err)
	}
	return func(x float64) (float64, error) {
		out, err := vm.Run(program, mathEnv(x))
		if err != nil {
			return 0, err
		}
		switch v := out.(type) {
		case float64:
			return v, nil
		case int:
			return float64(v), nil
		}
		return 0, fmt.Errorf("l'expression ne produit pas un nombre")
	}, nil
}

// RootStep une itération d'une méthode de recherche de racine
type RootStep struct {
	Iteration int     `json:"iteration"`
	X         float64 `json:"x"`
	FX        float64 `json:"fx"`
	Error     float64 `json:"error"`
}

// RootResult sortie d'une résolution non linéaire
type RootResult struct {
	Root       float64    `json:"root"`
	Iterations int        `json:"iterations"`
	Converged  bool       `json:"converged"`
	Steps      []RootStep `json:"steps"`
}

// Solve résout f(x)=0 à partir de x0 par la méthode demandée:
// newton | fixed_point | bisection
func (s *NonlinearService) Solve(expression string, x0 float64, method string) (*RootResult, error) {
	f, err := CompileFunc(expression)
	if err != nil {
		return nil, err
	}
	switch method {
	case "newton", "":
		return newtonSolve(f, x0)
	case "fixed_point":
		return fixedPointSolve(f, x0)
	case "bisection":
		return bisectionSolve(f, x0-1, x0+1)
	}
	return nil, fmt.Errorf("méthode inconnue: %q", method)
}

// newtonSolve Newton avec dérivée numérique centrée
func newtonSolve(f func(float64) (float64, error), x0 float64) (*RootResult, error) {
	res := &RootResult{}
	x := x0

	for i := 1; i <= RootMaxIterations; i++ {
		fx, err := f(x)
		if err != nil {
			return nil, err
		}
		fp, err := f(x + derivativeStep)
		if err != nil {
			return nil, err
		}
		fm, err := f(x - derivativeStep)
		if err != nil {
			return nil, err
		}
		dfx := (fp - fm) / (2 * derivativeStep)
		if math.Abs(dfx) < 1e-14 {
			return nil, util.ErrDivergence
		}

		next := x - fx/dfx
		step := math.Abs(next - x)
		res.Steps = append(res.Steps, RootStep{Iteration: i, X: next, FX: fx, Error: step})
		res.Iterations = i
		x = next

		if math.Abs(x) > RootDivergenceBand || math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, util.ErrDivergence
		}
		if step < RootTolerance {
			res.Converged = true
			break
		}
	}

	res.Root = x
	return res, nil
}

// fixedPointSolve itération de point fixe avec g(x) = x - f(x)
func fixedPointSolve(f func(float64) (float64, error), x0 float64) (*RootResult, error) {
	res := &RootResult{}
	x := x0

	for i := 1; i <= RootMaxIterations; i++ {
		fx, err := f(x)
		if err != nil {
			return nil, err
		}
		next := x - fx
		step := math.Abs(next - x)
		res.Steps = append(res.Steps, RootStep{Iteration: i, X: next, FX: fx, Error: step})
		res.Iterations = i
		x = next

		if math.Abs(x) > RootDivergenceBand || math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, util.ErrDivergence
		}
		if step < RootTolerance {
			res.Converged = true
			break
		}
	}

	res.Root = x
	return res, nil
}

// bisectionSolve dichotomie sur [a, b]; exige un changement de signe
func bisectionSolve(f func(float64) (float64, error), a, b float64) (*RootResult, error) {
	fa, err := f(a)
	if err != nil {
		return nil, err
	}
	fb, err := f(b)
	if err != nil {
		return nil, err
	}
	if fa*fb > 0 {
		return nil, util.ErrNoSignChange
	}

	res := &RootResult{}
	var mid float64
	for i := 1; i <= RootMaxIterations; i++ {
		mid = (a + b) / 2
		fm, err := f(mid)
		if err != nil {
			return nil, err
		}
		width := (b - a) / 2
		res.Steps = append(res.Steps, RootStep{Iteration: i, X: mid, FX: fm, Error: math.Abs(width)})
		res.Iterations = i

		if fm == 0 || math.Abs(width) < RootTolerance {
			res.Converged = true
			break
		}
		if fa*fm < 0 {
			b = mid
		} else {
			a = mid
			fa = fm
		}
	}

	res.Root = mid
	return res, nil
}
