package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/lotola/observatoire/core/access"
	"github.com/lotola/observatoire/core/movement"
)

type movementApi struct {
	svc      *movement.Service
	validate *validator.Validate
}

func registerMovementAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := movementApi{svc: deps.MovementSvc, validate: deps.Validate}

	mg := g.Group("/movements", jwt)
	mg.GET("", api.query)

	agent := pageMiddleware(access.PageAgent)
	mg.POST("", api.create, agent)
	mg.DELETE("/:id", api.destroy, agent)
}

func (api *movementApi) create(ctx echo.Context) error {
	var data movement.NewMovement
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewMovement")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	m, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating movement")
	}
	return ctx.JSON(http.StatusCreated, m)
}

func (api *movementApi) query(ctx echo.Context) error {
	var filter movement.Filter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to Filter")
	}

	movs, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying movements")
	}
	movs = movement.FilterMovements(movs, filter)
	if movs == nil {
		movs = []movement.Movement{}
	}
	return ctx.JSON(http.StatusOK, movs)
}

func (api *movementApi) destroy(ctx echo.Context) error {
	if _, err := api.svc.GetByID(ctx.Param("id")); err != nil {
		if errors.Cause(err) == movement.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding movement by ID")
	}
	if err := api.svc.Delete(ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting movement")
	}
	return ctx.NoContent(http.StatusNoContent)
}
