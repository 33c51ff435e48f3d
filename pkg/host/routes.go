package host

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/goliatone/go-flayyer/pkg/agent"
	"github.com/goliatone/go-flayyer/pkg/props"
	"github.com/goliatone/go-flayyer/pkg/sizes"
	"github.com/goliatone/go-flayyer/pkg/variables"
)

// PropsResponse is the body of GET /props/:template.
type PropsResponse struct {
	Template string           `json:"template"`
	Props    props.Props      `json:"props"`
	Issues   variables.Issues `json:"issues,omitempty"`
}

// SizeEntry is one row of GET /sizes.
type SizeEntry struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// SizesResponse is the body of GET /sizes.
type SizesResponse struct {
	Presets []SizeEntry `json:"presets"`
	Free    string      `json:"free"`
}

// Routes registers the preview endpoints on e.
func (h *Host) Routes(e *echo.Echo) {
	e.GET("/props/:template", h.handleProps)
	e.GET("/sizes", handleSizes)
	e.GET("/agents", handleAgents)
}

func (h *Host) handleProps(c echo.Context) error {
	name := c.Param("template")
	p, err := h.Props(c.Request().Context(), name, c.QueryParams(), c.Request().Header)
	resp := PropsResponse{Template: name, Props: p}
	if err != nil {
		var issues variables.Issues
		switch {
		case errors.As(err, &issues):
			resp.Issues = issues
		case errors.Is(err, ErrUnknownTemplate):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		default:
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}
	return c.JSON(http.StatusOK, resp)
}

func handleSizes(c echo.Context) error {
	table := sizes.All()
	resp := SizesResponse{Free: sizes.Free}
	for _, name := range sizes.Names() {
		size := table[name]
		resp.Presets = append(resp.Presets, SizeEntry{Name: name, Width: size.Width, Height: size.Height})
	}
	return c.JSON(http.StatusOK, resp)
}

func handleAgents(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]agent.Name{"agents": agent.Names()})
}
