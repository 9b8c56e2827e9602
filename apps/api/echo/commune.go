package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/lotola/observatoire/core/access"
	"github.com/lotola/observatoire/core/commune"
)

type communeApi struct {
	svc      *commune.Service
	validate *validator.Validate
}

func registerCommuneAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := communeApi{svc: deps.CommuneSvc, validate: deps.Validate}

	cg := g.Group("/communes", jwt)
	cg.GET("", api.query)

	admin := pageMiddleware(access.PageAdmin)
	cg.POST("", api.create, admin)
	cg.DELETE("/:id", api.destroy, admin)
}

func (api *communeApi) create(ctx echo.Context) error {
	var data commune.NewCommune
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCommune")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	c, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating commune")
	}
	return ctx.JSON(http.StatusCreated, c)
}

func (api *communeApi) query(ctx echo.Context) error {
	communes, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying communes")
	}
	if communes == nil {
		communes = []commune.Commune{}
	}
	return ctx.JSON(http.StatusOK, communes)
}

func (api *communeApi) destroy(ctx echo.Context) error {
	if _, err := api.svc.GetByID(ctx.Param("id")); err != nil {
		if errors.Cause(err) == commune.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding commune by ID")
	}
	if err := api.svc.Delete(ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting commune")
	}
	return ctx.NoContent(http.StatusNoContent)
}
