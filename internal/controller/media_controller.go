package controller

import (
	"numiviz_backend/internal/service"
	"numiviz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MediaController struct {
	MediaService *service.MediaService
}

func NewMediaController(mediaService *service.MediaService) *MediaController {
	return &MediaController{MediaService: mediaService}
}

// ManimCatalog godoc
// @Summary Catalogue des animations Manim pré-rendues
// @Description Parcourt le dossier des rendus 1080p60 et renvoie chaque
// @Description vidéo avec sa catégorie et sa durée
// @Tags media
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.ManimVideo} "Succès"
// @Router /api/media/manim [get]
func (c *MediaController) ManimCatalog(ctx *gin.Context) {
	videos, err := c.MediaService.ManimCatalog()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, videos)
}

// Upload godoc
// @Summary Téléversement d'un média de leçon
// @Description kind: image | video | file. Le type MIME réel du contenu
// @Description est vérifié avant stockage.
// @Tags media
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   kind formData string true "Catégorie"
// @Param   file formData file true "Fichier"
// @Success 201 {object} util.Response{data=service.UploadResult} "Créé"
// @Failure 400 {object} util.Response "Type de fichier refusé"
// @Router /api/media/upload [post]
func (c *MediaController) Upload(ctx *gin.Context) {
	header, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "fichier manquant")
		return
	}

	kind := ctx.PostForm("kind")
	if kind == "" {
		kind = "file"
	}

	result, err := c.MediaService.Upload(ctx.Request.Context(), header, kind)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, result)
}
