package controller

import (
	"errors"
	"numiviz_backend/internal/model"
	"numiviz_backend/internal/service"
	"numiviz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// swagger:model RegisterRequest
type RegisterRequest struct {
	Nom      string `json:"nom" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// Register godoc
// @Summary Inscription
// @Description Crée un compte étudiant avec les informations fournies
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   body body RegisterRequest true "Informations d'inscription"
// @Success 201 {object} util.Response{data=object} "Créé"
// @Failure 400 {object} util.Response "Paramètres invalides"
// @Failure 409 {object} util.Response "Email déjà enregistré"
// @Router /api/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := &model.User{
		Nom:      req.Nom,
		Email:    req.Email,
		Password: req.Password,
	}

	if err := c.AuthService.Register(user); err != nil {
		if errors.Is(err, util.ErrEmailRegistered) {
			util.Error(ctx, 409, "cet email est déjà enregistré")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{"id": user.ID})
}

// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary Connexion
// @Description Vérifie les identifiants et renvoie un jeton JWT
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "Identifiants"
// @Success 200 {object} util.Response{data=object} "Succès"
// @Failure 401 {object} util.Response "Identifiants invalides"
// @Router /api/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, err := c.AuthService.Login(req.Email, req.Password)
	if err != nil {
		util.Unauthorized(ctx)
		return
	}

	util.Success(ctx, gin.H{"token": token})
}

// GetProfile godoc
// @Summary Profil courant
// @Description Renvoie le profil de l'utilisateur authentifié
// @Tags auth
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.User} "Succès"
// @Failure 401 {object} util.Response "Non authentifié"
// @Router /api/profile [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	util.Success(ctx, gin.H{
		"id":         user.ID,
		"nom":        user.Nom,
		"email":      user.Email,
		"role":       user.Role,
		"last_login": user.LastLogin,
		"created_at": user.CreatedAt,
	})
}
