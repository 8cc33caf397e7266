package controller

import (
	"encoding/json"
	"numiviz_backend/internal/model"
	"numiviz_backend/internal/service"
	"numiviz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// Get godoc
// @Summary Détail d'un quiz avec ses questions
// @Tags quizzes
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "ID quiz"
// @Success 200 {object} util.Response{data=model.Quiz} "Succès"
// @Failure 404 {object} util.Response "Introuvable"
// @Router /api/quizzes/{id} [get]
func (c *QuizController) Get(ctx *gin.Context) {
	id, ok := util.ParamUint(ctx, "id")
	if !ok {
		return
	}
	q, err := c.QuizService.Get(id)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, q)
}

// Create godoc
// @Summary Création d'un quiz
// @Tags quizzes
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body model.Quiz true "Quiz"
// @Success 201 {object} util.Response{data=model.Quiz} "Créé"
// @Router /api/quizzes [post]
func (c *QuizController) Create(ctx *gin.Context) {
	var q model.Quiz
	if err := ctx.ShouldBindJSON(&q); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if q.Titre == "" || q.IDModule == 0 {
		util.BadRequest(ctx, "titre et id_module requis")
		return
	}
	if err := c.QuizService.Create(&q); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, q)
}

// Update godoc
// @Summary Mise à jour d'un quiz
// @Tags quizzes
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "ID quiz"
// @Param   body body model.Quiz true "Quiz"
// @Success 200 {object} util.Response{data=model.Quiz} "Succès"
// @Router /api/quizzes/{id} [put]
func (c *QuizController) Update(ctx *gin.Context) {
	id, ok := util.ParamUint(ctx, "id")
	if !ok {
		return
	}
	if _, err := c.QuizService.Get(id); err != nil {
		util.NotFound(ctx)
		return
	}
	var q model.Quiz
	if err := ctx.ShouldBindJSON(&q); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	q.ID = id
	q.Actif = true
	if err := c.QuizService.Update(&q); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, q)
}

// Delete godoc
// @Summary Suppression d'un quiz
// @Tags quizzes
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "ID quiz"
// @Success 200 {object} util.Response "Succès"
// @Router /api/quizzes/{id} [delete]
func (c *QuizController) Delete(ctx *gin.Context) {
	id, ok := util.ParamUint(ctx, "id")
	if !ok {
		return
	}
	if err := c.QuizService.Delete(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Submit godoc
// @Summary Soumission d'une tentative de quiz
// @Description Corrige, persiste le score et propose le quiz de
// @Description rattrapage du module si le seuil de 50% n'est pas atteint
// @Tags quizzes
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.SubmitRequest true "Réponses"
// @Success 200 {object} util.Response{data=service.SubmitResult} "Succès"
// @Failure 404 {object} util.Response "Quiz introuvable"
// @Router /api/quizzes/submit [post]
func (c *QuizController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.QuizService.Submit(claims.UserID, &req)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, result)
}

// CheckRequest vérification immédiate d'une question de bloc quiz
type CheckRequest struct {
	Question model.QuizBlockQuestion `json:"question"`
	Answer   json.RawMessage         `json:"answer"`
}

// Check godoc
// @Summary Correction immédiate d'une question embarquée
// @Description Pour les blocs quiz insérés dans une leçon, sans score
// @Tags quizzes
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CheckRequest true "Question et réponse"
// @Success 200 {object} util.Response{data=object} "Succès"
// @Router /api/quizzes/check [post]
func (c *QuizController) Check(ctx *gin.Context) {
	var req CheckRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	var answer interface{}
	if len(req.Answer) > 0 {
		if err := json.Unmarshal(req.Answer, &answer); err != nil {
			util.BadRequest(ctx, "réponse illisible")
			return
		}
	}
	util.Success(ctx, gin.H{"correct": service.CheckAnswer(req.Question, answer)})
}

// Scores godoc
// @Summary Historique des tentatives de l'utilisateur
// @Tags quizzes
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.ScoreQuiz} "Succès"
// @Router /api/quizzes/scores [get]
func (c *QuizController) Scores(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	scores, err := c.QuizService.ScoresByUser(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, scores)
}
