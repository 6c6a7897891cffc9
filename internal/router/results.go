package router

import (
	"errors"
	"io/fs"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/DjordjeVuckovic/rag-eval/internal/apperr"
	"github.com/DjordjeVuckovic/rag-eval/internal/eval/report"
	"github.com/DjordjeVuckovic/rag-eval/internal/eval/results"
)

type ResultsRouter struct {
	e      *echo.Echo
	source results.Source
	bins   int
}

type ResultsRouterOption func(*ResultsRouter)

// WithF1Bins sets the histogram bin count of /results/distributions.
func WithF1Bins(bins int) ResultsRouterOption {
	return func(r *ResultsRouter) {
		if bins > 0 {
			r.bins = bins
		}
	}
}

func NewResultsRouter(e *echo.Echo, source results.Source, opts ...ResultsRouterOption) *ResultsRouter {
	r := &ResultsRouter{
		e:      e,
		source: source,
		bins:   report.DefaultF1Bins,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *ResultsRouter) Bind() {
	g := r.e.Group("/results")
	g.GET("", r.listHandler)
	g.GET("/summary", r.summaryHandler)
	g.GET("/distributions", r.distributionsHandler)
	g.GET("/:index", r.recordHandler)
}

type ListResponse struct {
	RunID   string           `json:"run_id,omitempty"`
	Total   int              `json:"total"`
	Count   int              `json:"count"`
	Records []results.Record `json:"records"`
}

func (r *ResultsRouter) listHandler(c echo.Context) error {
	filter, err := parseFilter(c)
	if err != nil {
		return err
	}

	run, err := r.load(c)
	if err != nil {
		return err
	}

	filtered := filter.Apply(run.Records)
	return c.JSON(http.StatusOK, ListResponse{
		RunID:   run.ID,
		Total:   len(run.Records),
		Count:   len(filtered),
		Records: filtered,
	})
}

func (r *ResultsRouter) summaryHandler(c echo.Context) error {
	run, err := r.load(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report.Generate(run.Records, run.ID))
}

func (r *ResultsRouter) distributionsHandler(c echo.Context) error {
	run, err := r.load(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report.ComputeDistributions(run.Records, r.bins))
}

func (r *ResultsRouter) recordHandler(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		return apperr.NewValidationf("index must be a non-negative integer, got %q", c.Param("index"))
	}

	run, err := r.load(c)
	if err != nil {
		return err
	}
	if index >= len(run.Records) {
		return echo.NewHTTPError(http.StatusNotFound, "no record at index "+strconv.Itoa(index))
	}
	return c.JSON(http.StatusOK, run.Records[index])
}

func (r *ResultsRouter) load(c echo.Context) (*results.Run, error) {
	run, err := r.source.Load(c.Request().Context())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, echo.NewHTTPError(http.StatusNotFound, "result file not found, run rag_eval first")
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

func parseFilter(c echo.Context) (results.Filter, error) {
	var (
		f   results.Filter
		err error
	)

	if f.MinRecall, err = parseThreshold(c, "min_recall"); err != nil {
		return f, err
	}
	if f.MinMRR, err = parseThreshold(c, "min_mrr"); err != nil {
		return f, err
	}
	if f.MinF1, err = parseThreshold(c, "min_f1"); err != nil {
		return f, err
	}

	if v := c.QueryParam("em_zero"); v != "" {
		f.EMZeroOnly, err = strconv.ParseBool(v)
		if err != nil {
			return f, apperr.NewValidationf("em_zero must be a boolean, got %q", v)
		}
	}

	return f, nil
}

// parseThreshold reads an optional score threshold in [0, 1].
func parseThreshold(c echo.Context, name string) (*float64, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}

	threshold, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, apperr.NewValidationf("%s must be a number, got %q", name, v)
	}
	if threshold < 0 || threshold > 1 {
		return nil, apperr.NewValidationf("%s must be between 0 and 1, got %v", name, threshold)
	}
	return &threshold, nil
}
