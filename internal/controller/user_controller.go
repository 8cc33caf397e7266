package controller

import (
	"numiviz_backend/internal/model"
	"numiviz_backend/internal/service"
	"numiviz_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// pageParams page et taille de page depuis la query string, bornées
func pageParams(ctx *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

// List godoc
// @Summary Liste paginée des utilisateurs
// @Tags users
// @Produce  json
// @Security ApiKeyAuth
// @Param   page query int false "Page (défaut 1)"
// @Param   limit query int false "Taille de page (défaut 20, max 100)"
// @Success 200 {object} util.Response{data=util.PageResponse} "Succès"
// @Router /api/users [get]
func (c *UserController) List(ctx *gin.Context) {
	page, limit := pageParams(ctx)
	users, total, err := c.UserService.GetUsersPage(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{
		List:  users,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// Get godoc
// @Summary Détail d'un utilisateur
// @Tags users
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "ID utilisateur"
// @Success 200 {object} util.Response{data=model.User} "Succès"
// @Failure 404 {object} util.Response "Introuvable"
// @Router /api/users/{id} [get]
func (c *UserController) Get(ctx *gin.Context) {
	id, ok := util.ParamUint(ctx, "id")
	if !ok {
		return
	}
	user, err := c.UserService.GetUser(id)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, user)
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// UpdateRole godoc
// @Summary Changement de rôle
// @Description Réservé aux administrateurs
// @Tags users
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "ID utilisateur"
// @Param   body body UpdateRoleRequest true "Nouveau rôle"
// @Success 200 {object} util.Response "Succès"
// @Failure 400 {object} util.Response "Rôle invalide"
// @Router /api/users/{id}/role [put]
func (c *UserController) UpdateRole(ctx *gin.Context) {
	id, ok := util.ParamUint(ctx, "id")
	if !ok {
		return
	}
	var req UpdateRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.UserService.UpdateRole(id, model.UserRole(req.Role)); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, nil)
}

// Delete godoc
// @Summary Désactivation d'un compte
// @Tags users
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "ID utilisateur"
// @Success 200 {object} util.Response "Succès"
// @Router /api/users/{id} [delete]
func (c *UserController) Delete(ctx *gin.Context) {
	id, ok := util.ParamUint(ctx, "id")
	if !ok {
		return
	}
	if err := c.UserService.DeleteUser(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
