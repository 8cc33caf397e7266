package controller

import (
	"numiviz_backend/internal/model"
	"numiviz_backend/internal/service"
	"numiviz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ModuleController struct {
	ModuleService *service.ModuleService
	QuizService   *service.QuizService
}

func NewModuleController(moduleService *service.ModuleService, quizService *service.QuizService) *ModuleController {
	return &ModuleController{ModuleService: moduleService, QuizService: quizService}
}

// List godoc
// @Summary Liste des modules
// @Tags modules
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Module} "Succès"
// @Router /api/modules [get]
func (c *ModuleController) List(ctx *gin.Context) {
	modules, err := c.ModuleService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, modules)
}

// Get godoc
// @Summary Détail d'un module
// @Tags modules
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "ID module"
// @Success 200 {object} util.Response{data=model.Module} "Succès"
// @Failure 404 {object} util.Response "Introuvable"
// @Router /api/modules/{id} [get]
func (c *ModuleController) Get(ctx *gin.Context) {
	id, ok := util.ParamUint(ctx, "id")
	if !ok {
		return
	}
	m, err := c.ModuleService.Get(id)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, m)
}

// Create godoc
// @Summary Création d'un module
// @Description Réservé aux enseignants
// @Tags modules
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body model.Module true "Module"
// @Success 201 {object} util.Response{data=model.Module} "Créé"
// @Router /api/modules [post]
func (c *ModuleController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var m model.Module
	if err := ctx.ShouldBindJSON(&m); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if m.Titre == "" {
		util.BadRequest(ctx, "titre requis")
		return
	}
	if err := c.ModuleService.Create(&m, claims.UserID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, m)
}

// Update godoc
// @Summary Mise à jour d'un module
// @Tags modules
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "ID module"
// @Param   body body model.Module true "Module"
// @Success 200 {object} util.Response{data=model.Module} "Succès"
// @Router /api/modules/{id} [put]
func (c *ModuleController) Update(ctx *gin.Context) {
	id, ok := util.ParamUint(ctx, "id")
	if !ok {
		return
	}
	existing, err := c.ModuleService.Get(id)
	if err != nil {
		util.NotFound(ctx)
		return
	}

	var m model.Module
	if err := ctx.ShouldBindJSON(&m); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	m.ID = id
	m.IDEnseignant = existing.IDEnseignant
	m.Actif = true
	if err := c.ModuleService.Update(&m); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, m)
}

// Delete godoc
// @Summary Suppression d'un module
// @Tags modules
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "ID module"
// @Success 200 {object} util.Response "Succès"
// @Router /api/modules/{id} [delete]
func (c *ModuleController) Delete(ctx *gin.Context) {
	id, ok := util.ParamUint(ctx, "id")
	if !ok {
		return
	}
	if err := c.ModuleService.Delete(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Lessons godoc
// @Summary Leçons d'un module
// @Description Un étudiant ne voit que les leçons publiées
// @Tags modules
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "ID module"
// @Success 200 {object} util.Response{data=[]model.Lesson} "Succès"
// @Router /api/modules/{id}/lessons [get]
func (c *ModuleController) Lessons(ctx *gin.Context) {
	id, ok := util.ParamUint(ctx, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	lessons, err := c.ModuleService.Lessons(id, claims.Role)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, lessons)
}

// Quizzes godoc
// @Summary Quiz d'un module avec leur état de déverrouillage
// @Description Chaque quiz n'est ouvert que si le précédent est réussi
// @Tags modules
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "ID module"
// @Success 200 {object} util.Response{data=[]service.UnlockedQuiz} "Succès"
// @Router /api/modules/{id}/quizzes [get]
func (c *ModuleController) Quizzes(ctx *gin.Context) {
	id, ok := util.ParamUint(ctx, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	quizzes, err := c.QuizService.QuizzesForModule(id, claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, quizzes)
}

// Chapters godoc
// @Summary Chapitres référencés par les exercices
// @Tags modules
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]string} "Succès"
// @Router /api/chapters [get]
func (c *ModuleController) Chapters(ctx *gin.Context) {
	chapters, err := c.ModuleService.Chapters()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, chapters)
}
