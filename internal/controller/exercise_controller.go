package controller

import (
	"numiviz_backend/internal/model"
	"numiviz_backend/internal/service"
	"numiviz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExerciseController struct {
	ExerciseService *service.ExerciseService
	ExamService     *service.ExamService
}

func NewExerciseController(exerciseService *service.ExerciseService, examService *service.ExamService) *ExerciseController {
	return &ExerciseController{ExerciseService: exerciseService, ExamService: examService}
}

// List godoc
// @Summary Liste des exercices, filtrable par chapitre et TP
// @Tags exercises
// @Produce  json
// @Security ApiKeyAuth
// @Param   chapitre query string false "Chapitre"
// @Param   tp query string false "TP"
// @Success 200 {object} util.Response{data=[]model.Exercise} "Succès"
// @Router /api/exercises [get]
func (c *ExerciseController) List(ctx *gin.Context) {
	chapter := ctx.Query("chapitre")
	tp := ctx.Query("tp")

	var (
		exercises []model.Exercise
		err       error
	)
	if chapter == "" && tp == "" {
		exercises, err = c.ExerciseService.List()
	} else {
		exercises, err = c.ExerciseService.Filter(chapter, tp)
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, exercises)
}

// Get godoc
// @Summary Détail d'un exercice
// @Tags exercises
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "ID exercice"
// @Success 200 {object} util.Response{data=model.Exercise} "Succès"
// @Failure 404 {object} util.Response "Introuvable"
// @Router /api/exercises/{id} [get]
func (c *ExerciseController) Get(ctx *gin.Context) {
	id, ok := util.ParamUint(ctx, "id")
	if !ok {
		return
	}
	e, err := c.ExerciseService.Get(id)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, e)
}

// Create godoc
// @Summary Création d'un exercice
// @Tags exercises
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body model.Exercise true "Exercice"
// @Success 201 {object} util.Response{data=model.Exercise} "Créé"
// @Router /api/exercises [post]
func (c *ExerciseController) Create(ctx *gin.Context) {
	var e model.Exercise
	if err := ctx.ShouldBindJSON(&e); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if e.Question == "" {
		util.BadRequest(ctx, "question requise")
		return
	}
	if err := c.ExerciseService.Create(&e); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, e)
}

// Update godoc
// @Summary Mise à jour d'un exercice
// @Tags exercises
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "ID exercice"
// @Param   body body model.Exercise true "Exercice"
// @Success 200 {object} util.Response{data=model.Exercise} "Succès"
// @Router /api/exercises/{id} [put]
func (c *ExerciseController) Update(ctx *gin.Context) {
	id, ok := util.ParamUint(ctx, "id")
	if !ok {
		return
	}
	if _, err := c.ExerciseService.Get(id); err != nil {
		util.NotFound(ctx)
		return
	}
	var e model.Exercise
	if err := ctx.ShouldBindJSON(&e); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	e.ID = id
	e.Actif = true
	if err := c.ExerciseService.Update(&e); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, e)
}

// Delete godoc
// @Summary Suppression d'un exercice
// @Tags exercises
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "ID exercice"
// @Success 200 {object} util.Response "Succès"
// @Router /api/exercises/{id} [delete]
func (c *ExerciseController) Delete(ctx *gin.Context) {
	id, ok := util.ParamUint(ctx, "id")
	if !ok {
		return
	}
	if err := c.ExerciseService.Delete(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ExamList godoc
// @Summary Exercices en mode examen
// @Description Les solutions deviennent les réponses attendues
// @Tags exam
// @Produce  json
// @Security ApiKeyAuth
// @Param   chapitre query string false "Chapitre"
// @Param   tp query string false "TP"
// @Success 200 {object} util.Response{data=[]service.ExamExercise} "Succès"
// @Router /api/exam/exercises [get]
func (c *ExerciseController) ExamList(ctx *gin.Context) {
	exercises, err := c.ExamService.Filter(ctx.Query("chapitre"), ctx.Query("tp"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, exercises)
}

// ExamValidateRequest réponse libre d'un étudiant en mode examen
type ExamValidateRequest struct {
	ExerciseID uint   `json:"exercise_id" binding:"required"`
	Answer     string `json:"answer"`
}

// ExamValidate godoc
// @Summary Validation d'une réponse d'examen
// @Description Comparaison exacte, puis normalisée, puis par mots-clés
// @Tags exam
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body ExamValidateRequest true "Réponse"
// @Success 200 {object} util.Response{data=object} "Succès"
// @Failure 404 {object} util.Response "Exercice introuvable"
// @Router /api/exam/validate [post]
func (c *ExerciseController) ExamValidate(ctx *gin.Context) {
	var req ExamValidateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	e, err := c.ExerciseService.Get(req.ExerciseID)
	if err != nil {
		util.NotFound(ctx)
		return
	}

	correct := service.ValidateAnswer(req.Answer, []string{e.Solution})
	resp := gin.H{"correct": correct, "points": 0}
	if correct {
		resp["points"] = e.Points
		resp["feedback"] = e.Feedback
	}
	util.Success(ctx, resp)
}

// ExamScoreRequest réponses d'une session d'examen complète
type ExamScoreRequest struct {
	Chapitre string          `json:"chapitre"`
	TP       string          `json:"tp"`
	Answers  map[uint]string `json:"answers"`
}

// ExamScore godoc
// @Summary Score d'une session d'examen
// @Tags exam
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body ExamScoreRequest true "Réponses de la session"
// @Success 200 {object} util.Response{data=object} "Succès"
// @Router /api/exam/score [post]
func (c *ExerciseController) ExamScore(ctx *gin.Context) {
	var req ExamScoreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	exercises, err := c.ExamService.Filter(req.Chapitre, req.TP)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	current, total := service.ScoreSession(exercises, req.Answers)
	util.Success(ctx, gin.H{"score": current, "total": total})
}
