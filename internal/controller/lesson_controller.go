package controller

import (
	"encoding/json"
	"errors"
	"numiviz_backend/internal/model"
	"numiviz_backend/internal/service"
	"numiviz_backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
)

type LessonController struct {
	LessonService   *service.LessonService
	ProgressService *service.ProgressService
}

func NewLessonController(lessonService *service.LessonService, progressService *service.ProgressService) *LessonController {
	return &LessonController{LessonService: lessonService, ProgressService: progressService}
}

// Get godoc
// @Summary Détail d'une leçon avec ses blocs
// @Description Un étudiant n'accède qu'aux leçons publiées; les solutions
// @Description d'exercice non dévoilées lui sont masquées
// @Tags lessons
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "ID leçon"
// @Success 200 {object} util.Response{data=object} "Succès"
// @Failure 404 {object} util.Response "Introuvable"
// @Router /api/lessons/{id} [get]
func (c *LessonController) Get(ctx *gin.Context) {
	id, ok := util.ParamUint(ctx, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	lesson, err := c.LessonService.GetVisible(id, claims.Role)
	if err != nil {
		util.NotFound(ctx)
		return
	}

	blocks := lesson.Blocks()
	if claims.Role == model.Etudiant {
		blocks = model.RedactSolutions(blocks)
		masked := *lesson
		if err := masked.SetBlocks(blocks); err == nil {
			lesson = &masked
		}
	}

	util.Success(ctx, gin.H{
		"lesson": lesson,
		"blocks": blocks,
	})
}

// Edit godoc
// @Summary Ouverture d'une leçon dans l'éditeur
// @Description Une leçon sans bloc reçoit un bloc texte de départ; ce
// @Description bloc n'est persisté qu'à la sauvegarde suivante.
// @Tags lessons
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "ID leçon"
// @Success 200 {object} util.Response{data=object} "Succès"
// @Failure 404 {object} util.Response "Introuvable"
// @Router /api/lessons/{id}/edit [get]
func (c *LessonController) Edit(ctx *gin.Context) {
	id, ok := util.ParamUint(ctx, "id")
	if !ok {
		return
	}
	lesson, err := c.LessonService.Get(id)
	if err != nil {
		util.NotFound(ctx)
		return
	}

	draft := model.OpenLessonDraft(lesson.Blocks())
	util.Success(ctx, gin.H{
		"lesson": lesson,
		"blocks": draft.Blocks(),
	})
}

// StagedExercise un exercice saisi dans l'éditeur, avec ses pièces jointes
type StagedExercise struct {
	Exercise model.ExerciseContent `json:"exercise"`
	Image    model.ImageContent    `json:"image"`
	File     model.FileContent     `json:"file"`
	Video    model.VideoContent    `json:"video"`
	Text     model.TextContent     `json:"text"`
	Chapitre string                `json:"chapitre"`
	TP       string                `json:"tp"`
}

// SaveLessonRequest corps de sauvegarde d'une leçon
type SaveLessonRequest struct {
	Titre           string           `json:"titre"`
	IDModule        uint             `json:"id_module" binding:"required"`
	Ordre           int              `json:"ordre"`
	Visibilite      model.Visibility `json:"visibilite"`
	DatePublication *time.Time       `json:"date_publication"`
	Blocks          json.RawMessage  `json:"blocks"`
	Exercices       []StagedExercise `json:"exercices"`
}

// toLesson projette la requête sur le modèle; id vaut 0 pour une
// création et l'id du chemin pour une mise à jour
func (r *SaveLessonRequest) toLesson(id uint) *model.Lesson {
	lesson := &model.Lesson{
		Titre:           r.Titre,
		Ordre:           r.Ordre,
		IDModule:        r.IDModule,
		Visibilite:      r.Visibilite,
		DatePublication: r.DatePublication,
	}
	lesson.ID = id
	return lesson
}

// Save godoc
// @Summary Création d'une leçon
// @Description Crée une leçon avec ses blocs de contenu, tels que soumis.
// @Description Les exercices joints sont persistés avant les blocs; si la
// @Description sauvegarde échoue ensuite, ils sont supprimés.
// @Tags lessons
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body SaveLessonRequest true "Leçon"
// @Success 201 {object} util.Response{data=object} "Créé"
// @Failure 400 {object} util.Response "Titre manquant ou blocs invalides"
// @Router /api/lessons [post]
func (c *LessonController) Save(ctx *gin.Context) {
	c.save(ctx, 0)
}

// Update godoc
// @Summary Mise à jour d'une leçon
// @Tags lessons
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "ID leçon"
// @Param   body body SaveLessonRequest true "Leçon"
// @Success 200 {object} util.Response{data=object} "Mis à jour"
// @Failure 400 {object} util.Response "Titre manquant ou blocs invalides"
// @Router /api/lessons/{id} [put]
func (c *LessonController) Update(ctx *gin.Context) {
	id, ok := util.ParamUint(ctx, "id")
	if !ok {
		return
	}
	c.save(ctx, id)
}

func (c *LessonController) save(ctx *gin.Context, id uint) {
	var req SaveLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson := req.toLesson(id)
	if err := c.LessonService.Validate(lesson); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	draft := model.NewLessonDraft(model.DecodeBlocks(string(req.Blocks)))
	for _, staged := range req.Exercices {
		_, err := draft.CommitExerciseBlock(staged.Exercise, model.StagedAttachments{
			Image: staged.Image,
			File:  staged.File,
			Video: staged.Video,
			Text:  staged.Text,
		}, c.LessonService.CreateExercise(staged.Chapitre, staged.TP))
		if err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
	}

	result, err := c.LessonService.SaveDraft(lesson, draft)
	if err != nil {
		if errors.Is(err, util.ErrLessonTitleMissing) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	payload := gin.H{"lesson": result.Lesson, "blocks": result.Lesson.Blocks()}
	if result.Created {
		util.Created(ctx, payload)
	} else {
		util.Success(ctx, payload)
	}
}

// Delete godoc
// @Summary Suppression d'une leçon
// @Tags lessons
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "ID leçon"
// @Success 200 {object} util.Response "Succès"
// @Router /api/lessons/{id} [delete]
func (c *LessonController) Delete(ctx *gin.Context) {
	id, ok := util.ParamUint(ctx, "id")
	if !ok {
		return
	}
	if err := c.LessonService.Delete(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// BlockTypes godoc
// @Summary Types de blocs disponibles avec leur contenu par défaut
// @Tags lessons
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "Succès"
// @Router /api/lessons/block-types [get]
func (c *LessonController) BlockTypes(ctx *gin.Context) {
	types := model.BlockTypes()
	defaults := make(map[model.BlockType]model.BlockContent, len(types))
	for _, t := range types {
		content, err := model.DefaultContent(t)
		if err != nil {
			continue
		}
		defaults[t] = content
	}
	util.Success(ctx, gin.H{"types": types, "defaults": defaults})
}

// CanAdvance godoc
// @Summary L'utilisateur peut-il passer à la leçon suivante
// @Description Une leçon avec animation Manim exige 90% de visionnage
// @Description pour un étudiant; les enseignants passent toujours.
// @Tags lessons
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "ID leçon"
// @Success 200 {object} util.Response{data=object} "Succès"
// @Router /api/lessons/{id}/can-advance [get]
func (c *LessonController) CanAdvance(ctx *gin.Context) {
	id, ok := util.ParamUint(ctx, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	lesson, err := c.LessonService.GetVisible(id, claims.Role)
	if err != nil {
		util.NotFound(ctx)
		return
	}

	watched := c.ProgressService.LessonWatched(claims.UserID, lesson.ID)
	hasManim := model.HasManimBlock(lesson.Blocks())
	util.Success(ctx, gin.H{
		"can_advance": service.CanAdvance(claims.Role, hasManim, watched),
		"has_manim":   hasManim,
		"watched":     watched,
	})
}

// RenderMathRequest texte mixte LaTeX/HTML à segmenter
type RenderMathRequest struct {
	Text string `json:"text"`
}

// RenderMath godoc
// @Summary Segmentation d'un texte mixte LaTeX
// @Description Découpe le texte en segments texte, $$…$$ (display),
// @Description $…$ (inline) ou HTML brut, pour le rendu côté client
// @Tags lessons
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body RenderMathRequest true "Texte"
// @Success 200 {object} util.Response{data=[]model.Segment} "Succès"
// @Router /api/lessons/render-math [post]
func (c *LessonController) RenderMath(ctx *gin.Context) {
	var req RenderMathRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, model.TokenizeMath(req.Text))
}
