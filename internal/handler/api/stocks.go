// Package api serves the dataset of the latest aggregation run over HTTP.
package api

import (
	"StockPulse/internal/domain/models"
	drepo "StockPulse/internal/domain/repository"
	"StockPulse/internal/usecase"
	xhttp "StockPulse/pkg/http"
	xlogger "StockPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// StocksHandler serves the latest run's records.
type StocksHandler struct {
	logger   *xlogger.Logger
	snapshot *usecase.Snapshot
	sink     drepo.RecordSink
}

// NewStocksHandler creates a stocks handler. sink may be nil when no
// persistent backend is configured; health then reports only the process.
func NewStocksHandler(logger *xlogger.Logger, snapshot *usecase.Snapshot, sink drepo.RecordSink) *StocksHandler {
	return &StocksHandler{logger: logger, snapshot: snapshot, sink: sink}
}

// RegisterRoutes implements xhttp.Handler.
func (h *StocksHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/stocks", h.Stocks)
	g.GET("/stocks/latest", h.Latest)
	e.GET("/healthz", h.Health)
}

// Stocks returns up to ?max rows of the latest run, universe order.
func (h *StocksHandler) Stocks(c echo.Context) error {
	req := &models.StocksRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if h.snapshot.Empty() {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError("no completed run yet"))
	}

	_, asOf, rows, total := h.snapshot.Records(req.Max)
	return xhttp.SuccessResponse(c, &xhttp.DatasetResponse{
		Rows:  rows,
		Total: total,
		AsOf:  asOf,
	})
}

// Latest returns the full latest run with its run id.
func (h *StocksHandler) Latest(c echo.Context) error {
	if h.snapshot.Empty() {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError("no completed run yet"))
	}

	runID, asOf, rows, total := h.snapshot.Records(0)
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"run_id": runID,
		"as_of":  asOf,
		"total":  total,
		"rows":   rows,
	})
}

// Health reports process liveness and, when a sink is wired, its reachability.
func (h *StocksHandler) Health(c echo.Context) error {
	status := map[string]string{"status": "ok"}
	if h.sink != nil {
		if err := h.sink.Health(c.Request().Context()); err != nil {
			h.logger.Warn("sink health check failed", xlogger.Error(err))
			return xhttp.AppErrorResponse(c, xhttp.UnavailableError("sink unreachable").WithError(err))
		}
		status["sink"] = "ok"
	}
	return xhttp.SuccessResponse(c, status)
}
