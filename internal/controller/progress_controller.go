package controller

import (
	"numiviz_backend/internal/service"
	"numiviz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// ReportRequest rapport de visionnage vidéo
type ReportRequest struct {
	IDModule uint    `json:"id_module" binding:"required"`
	IDLecon  uint    `json:"id_lecon" binding:"required"`
	Percent  float64 `json:"percent"`
}

// Report godoc
// @Summary Rapport de progression vidéo
// @Description Les rapports sont filtrés côté serveur: écriture immédiate
// @Description au franchissement d'un palier de 10% ou à la fin, sinon au
// @Description plus une écriture toutes les 2 secondes. La progression
// @Description stockée ne régresse jamais.
// @Tags progress
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body ReportRequest true "Rapport"
// @Success 200 {object} util.Response{data=model.Progression} "Succès"
// @Router /api/progress/video [post]
func (c *ProgressController) Report(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.Percent < 0 || req.Percent > 100 {
		util.BadRequest(ctx, "percent doit être entre 0 et 100")
		return
	}

	p, err := c.ProgressService.ReportVideo(claims.UserID, req.IDModule, req.IDLecon, req.Percent)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, p)
}

// Module godoc
// @Summary Progression sur un module
// @Description Synthèse 70% vidéo / 30% quiz, mise en cache 5 minutes
// @Tags progress
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "ID module"
// @Success 200 {object} util.Response{data=model.ModuleProgress} "Succès"
// @Router /api/progress/modules/{id} [get]
func (c *ProgressController) Module(ctx *gin.Context) {
	id, ok := util.ParamUint(ctx, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	mp, err := c.ProgressService.ModuleProgress(claims.UserID, id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, mp)
}
