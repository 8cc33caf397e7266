package controller

import (
	"errors"
	"numiviz_backend/internal/service"
	"numiviz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// SolverController endpoints de calcul numérique: opérations
// matricielles, systèmes linéaires, équations non linéaires et le petit
// solveur graphique 2x2
type SolverController struct {
	MatrixService    *service.MatrixService
	NonlinearService *service.NonlinearService
	Linear2x2Service *service.Linear2x2Service
}

func NewSolverController(matrixService *service.MatrixService, nonlinearService *service.NonlinearService, linear2x2Service *service.Linear2x2Service) *SolverController {
	return &SolverController{
		MatrixService:    matrixService,
		NonlinearService: nonlinearService,
		Linear2x2Service: linear2x2Service,
	}
}

func solverError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrInvalidMatrix),
		errors.Is(err, util.ErrDimensionMismatch),
		errors.Is(err, util.ErrNoSignChange):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrSingularMatrix),
		errors.Is(err, util.ErrDivergence):
		util.Error(ctx, 422, err.Error())
	default:
		util.BadRequest(ctx, err.Error())
	}
}

// MatrixOpRequest opération sur une ou deux matrices
type MatrixOpRequest struct {
	Matrix [][]float64 `json:"matrix" binding:"required"`
	Other  [][]float64 `json:"other"`
	Norm   string      `json:"norm"`
}

// MatrixOp godoc
// @Summary Opération matricielle
// @Description op: determinant | inverse | transpose | norm | product
// @Tags solver
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   op path string true "Opération"
// @Param   body body MatrixOpRequest true "Matrices"
// @Success 200 {object} util.Response{data=object} "Succès"
// @Failure 400 {object} util.Response "Matrice invalide"
// @Failure 422 {object} util.Response "Matrice singulière"
// @Router /api/solver/matrix/{op} [post]
func (c *SolverController) MatrixOp(ctx *gin.Context) {
	var req MatrixOpRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	switch ctx.Param("op") {
	case "determinant":
		det, err := c.MatrixService.Determinant(req.Matrix)
		if err != nil {
			solverError(ctx, err)
			return
		}
		util.Success(ctx, gin.H{"determinant": det})
	case "inverse":
		inv, err := c.MatrixService.Inverse(req.Matrix)
		if err != nil {
			solverError(ctx, err)
			return
		}
		util.Success(ctx, gin.H{"inverse": inv})
	case "transpose":
		t, err := c.MatrixService.Transpose(req.Matrix)
		if err != nil {
			solverError(ctx, err)
			return
		}
		util.Success(ctx, gin.H{"transpose": t})
	case "norm":
		n, err := c.MatrixService.Norm(req.Matrix, req.Norm)
		if err != nil {
			solverError(ctx, err)
			return
		}
		util.Success(ctx, gin.H{"norm": n})
	case "product":
		p, err := c.MatrixService.Product(req.Matrix, req.Other)
		if err != nil {
			solverError(ctx, err)
			return
		}
		util.Success(ctx, gin.H{"product": p})
	default:
		util.BadRequest(ctx, "opération inconnue: "+ctx.Param("op"))
	}
}

// LinearSystemRequest système Ax=b
type LinearSystemRequest struct {
	A      [][]float64 `json:"a" binding:"required"`
	B      []float64   `json:"b" binding:"required"`
	Method string      `json:"method"`
}

// SolveLinearSystem godoc
// @Summary Résolution d'un système linéaire avec étapes
// @Description method: gauss (défaut) | lu | jacobi | gauss_seidel
// @Tags solver
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body LinearSystemRequest true "Système"
// @Success 200 {object} util.Response{data=service.SolveResult} "Succès"
// @Failure 422 {object} util.Response "Matrice singulière"
// @Router /api/solver/linear-system [post]
func (c *SolverController) SolveLinearSystem(ctx *gin.Context) {
	var req LinearSystemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := c.MatrixService.SolveSystem(req.A, req.B, req.Method)
	if err != nil {
		solverError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// Convergence godoc
// @Summary Courbes de convergence Jacobi vs Gauss-Seidel
// @Tags solver
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body LinearSystemRequest true "Système"
// @Success 200 {object} util.Response{data=object} "Succès"
// @Router /api/solver/convergence [post]
func (c *SolverController) Convergence(ctx *gin.Context) {
	var req LinearSystemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	jacobi, gaussSeidel, err := c.MatrixService.ConvergenceCurves(req.A, req.B)
	if err != nil {
		solverError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"jacobi": jacobi, "gauss_seidel": gaussSeidel})
}

// NonlinearRequest équation f(x)=0
type NonlinearRequest struct {
	Expression string  `json:"expression" binding:"required"`
	X0         float64 `json:"x0"`
	Method     string  `json:"method"`
}

// SolveNonlinear godoc
// @Summary Recherche de racine f(x)=0
// @Description method: newton (défaut) | fixed_point | bisection.
// @Description L'expression admet x, pi, e et les fonctions usuelles.
// @Tags solver
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body NonlinearRequest true "Équation"
// @Success 200 {object} util.Response{data=service.RootResult} "Succès"
// @Failure 400 {object} util.Response "Expression invalide ou pas de changement de signe"
// @Failure 422 {object} util.Response "Divergence"
// @Router /api/solver/nonlinear [post]
func (c *SolverController) SolveNonlinear(ctx *gin.Context) {
	var req NonlinearRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := c.NonlinearService.Solve(req.Expression, req.X0, req.Method)
	if err != nil {
		solverError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// Linear2x2Request deux droites y=mx+b
type Linear2x2Request struct {
	Line1 string `json:"line1" binding:"required"`
	Line2 string `json:"line2" binding:"required"`
}

// SolveLinear2x2 godoc
// @Summary Intersection de deux droites y=mx+b
// @Description Classe le système: unique, none, infinite ou invalid.
// @Description La résolution est historisée par utilisateur.
// @Tags solver
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body Linear2x2Request true "Droites"
// @Success 200 {object} util.Response{data=service.Linear2x2Result} "Succès"
// @Router /api/solver/linear-2x2 [post]
func (c *SolverController) SolveLinear2x2(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req Linear2x2Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, c.Linear2x2Service.Solve(claims.UserID, req.Line1, req.Line2))
}

// Linear2x2History godoc
// @Summary Historique des résolutions 2x2 de l'utilisateur
// @Tags solver
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.LinearSystemHistory} "Succès"
// @Router /api/solver/linear-2x2/history [get]
func (c *SolverController) Linear2x2History(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	rows, err := c.Linear2x2Service.History(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// Linear2x2ClearHistory godoc
// @Summary Purge de l'historique 2x2 de l'utilisateur
// @Tags solver
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response "Succès"
// @Router /api/solver/linear-2x2/history [delete]
func (c *SolverController) Linear2x2ClearHistory(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.Linear2x2Service.ClearHistory(claims.UserID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
