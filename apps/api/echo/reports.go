package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/lotola/observatoire/core/access"
	"github.com/lotola/observatoire/core/commune"
	"github.com/lotola/observatoire/core/movement"
	"github.com/lotola/observatoire/core/reason"
)

type reportsApi struct {
	movementSvc *movement.Service
	communeSvc  *commune.Service
	reasonSvc   *reason.Service
}

func registerReportsAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := reportsApi{
		movementSvc: deps.MovementSvc,
		communeSvc:  deps.CommuneSvc,
		reasonSvc:   deps.ReasonSvc,
	}

	rg := g.Group("/reports", jwt)

	// dashboard views, open to any authenticated session
	rg.GET("/summary", api.summary)
	rg.GET("/by-destination", api.byDestination)
	rg.GET("/by-reason", api.byReason)
	rg.GET("/by-date", api.byDate)
	rg.GET("/flux", api.flux)

	decision := pageMiddleware(access.PageDecision)
	rg.GET("/top-destinations", api.topDestinations, decision)
	rg.GET("/top-reasons", api.topReasons, decision)
}

type SummaryResponse struct {
	Movements int `json:"movements"`
	Communes  int `json:"communes"`
	Reasons   int `json:"reasons"`
	Forecast  int `json:"forecast"`
}

func (api *reportsApi) summary(ctx echo.Context) error {
	movs, err := api.movementSvc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying movements")
	}
	communes, err := api.communeSvc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying communes")
	}
	reasons, err := api.reasonSvc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying reasons")
	}

	return ctx.JSON(http.StatusOK, SummaryResponse{
		Movements: len(movs),
		Communes:  len(communes),
		Reasons:   len(reasons),
		Forecast:  movement.ForecastNext(movement.CountByDate(movs)),
	})
}

func (api *reportsApi) filteredMovements(ctx echo.Context) ([]movement.Movement, error) {
	var filter movement.Filter
	if err := ctx.Bind(&filter); err != nil {
		return nil, errors.Wrap(err, "binding to Filter")
	}

	movs, err := api.movementSvc.QueryAll()
	if err != nil {
		return nil, errors.Wrap(err, "querying movements")
	}
	return movement.FilterMovements(movs, filter), nil
}

func (api *reportsApi) byDestination(ctx echo.Context) error {
	movs, err := api.filteredMovements(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, movement.CountByDestination(movs))
}

func (api *reportsApi) byReason(ctx echo.Context) error {
	movs, err := api.filteredMovements(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, movement.CountByReason(movs))
}

func (api *reportsApi) byDate(ctx echo.Context) error {
	movs, err := api.filteredMovements(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, movement.CountByDate(movs))
}

func (api *reportsApi) topDestinations(ctx echo.Context) error {
	movs, err := api.filteredMovements(ctx)
	if err != nil {
		return err
	}
	n, _ := strconv.Atoi(ctx.QueryParam("n"))
	return ctx.JSON(http.StatusOK, movement.TopN(movement.CountByDestination(movs), n))
}

func (api *reportsApi) topReasons(ctx echo.Context) error {
	movs, err := api.filteredMovements(ctx)
	if err != nil {
		return err
	}
	n, _ := strconv.Atoi(ctx.QueryParam("n"))
	return ctx.JSON(http.StatusOK, movement.TopN(movement.CountByReason(movs), n))
}

func (api *reportsApi) flux(ctx echo.Context) error {
	movs, err := api.filteredMovements(ctx)
	if err != nil {
		return err
	}
	communes, err := api.communeSvc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying communes")
	}
	return ctx.JSON(http.StatusOK, movement.FluxSegments(movs, communes))
}
