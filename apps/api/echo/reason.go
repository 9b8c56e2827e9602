package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/lotola/observatoire/core/access"
	"github.com/lotola/observatoire/core/reason"
)

type reasonApi struct {
	svc      *reason.Service
	validate *validator.Validate
}

func registerReasonAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := reasonApi{svc: deps.ReasonSvc, validate: deps.Validate}

	rg := g.Group("/reasons", jwt)
	rg.GET("", api.query)

	admin := pageMiddleware(access.PageAdmin)
	rg.POST("", api.create, admin)
	rg.DELETE("/:id", api.destroy, admin)
}

func (api *reasonApi) create(ctx echo.Context) error {
	var data reason.NewReason
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewReason")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	r, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating reason")
	}
	return ctx.JSON(http.StatusCreated, r)
}

func (api *reasonApi) query(ctx echo.Context) error {
	reasons, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying reasons")
	}
	if reasons == nil {
		reasons = []reason.Reason{}
	}
	return ctx.JSON(http.StatusOK, reasons)
}

func (api *reasonApi) destroy(ctx echo.Context) error {
	if _, err := api.svc.GetByID(ctx.Param("id")); err != nil {
		if errors.Cause(err) == reason.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding reason by ID")
	}
	if err := api.svc.Delete(ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting reason")
	}
	return ctx.NoContent(http.StatusNoContent)
}
