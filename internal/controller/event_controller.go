package controller

import (
	"errors"
	"numiviz_backend/internal/model"
	"numiviz_backend/internal/service"
	"numiviz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EventController struct {
	EventService *service.EventService
}

func NewEventController(eventService *service.EventService) *EventController {
	return &EventController{EventService: eventService}
}

// List godoc
// @Summary Événements de l'agenda personnel
// @Tags events
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.CalendarEvent} "Succès"
// @Router /api/events [get]
func (c *EventController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	events, err := c.EventService.List(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, events)
}

// Create godoc
// @Summary Création d'un événement
// @Tags events
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body model.CalendarEvent true "Événement"
// @Success 201 {object} util.Response{data=model.CalendarEvent} "Créé"
// @Router /api/events [post]
func (c *EventController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var e model.CalendarEvent
	if err := ctx.ShouldBindJSON(&e); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if e.Titre == "" {
		util.BadRequest(ctx, "titre requis")
		return
	}
	if err := c.EventService.Create(claims.UserID, &e); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, e)
}

// Update godoc
// @Summary Mise à jour d'un événement
// @Description Uniquement par son propriétaire
// @Tags events
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "ID événement"
// @Param   body body model.CalendarEvent true "Événement"
// @Success 200 {object} util.Response{data=model.CalendarEvent} "Succès"
// @Failure 403 {object} util.Response "Événement d'un autre utilisateur"
// @Router /api/events/{id} [put]
func (c *EventController) Update(ctx *gin.Context) {
	id, ok := util.ParamUint(ctx, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var e model.CalendarEvent
	if err := ctx.ShouldBindJSON(&e); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	e.ID = id

	if err := c.EventService.Update(claims.UserID, &e); err != nil {
		switch {
		case errors.Is(err, util.ErrEventNotFound):
			util.NotFound(ctx)
		case errors.Is(err, service.ErrEventForbidden):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, e)
}

// Delete godoc
// @Summary Suppression d'un événement
// @Tags events
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "ID événement"
// @Success 200 {object} util.Response "Succès"
// @Failure 403 {object} util.Response "Événement d'un autre utilisateur"
// @Router /api/events/{id} [delete]
func (c *EventController) Delete(ctx *gin.Context) {
	id, ok := util.ParamUint(ctx, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.EventService.Delete(claims.UserID, id); err != nil {
		switch {
		case errors.Is(err, util.ErrEventNotFound):
			util.NotFound(ctx)
		case errors.Is(err, service.ErrEventForbidden):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
