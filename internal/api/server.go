// Package api exposes the tiling planner over HTTP so driver tooling can
// query candidate configurations without linking the compiler.
package api

import (
	"fmt"
	"io"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/labstack/echo/v5"

	"github.com/samcharles93/slate/internal/hw"
	"github.com/samcharles93/slate/internal/logger"
	"github.com/samcharles93/slate/internal/opdesc"
	"github.com/samcharles93/slate/internal/sram"
	"github.com/samcharles93/slate/internal/strategy"
)

type Server struct {
	log logger.Logger
}

func NewServer(log logger.Logger) *Server {
	if log == nil {
		log = logger.Default()
	}
	return &Server{log: log}
}

func (s *Server) Register(e *echo.Echo) {
	e.POST("/v1/plan", s.handlePlan)
	e.GET("/v1/caps", s.handleListCaps)
	e.GET("/v1/caps/:name", s.handleGetCaps)
}

func (s *Server) handlePlan(c *echo.Context) error {
	spec, err := decodeJSON[opdesc.Spec](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err.Error())
	}
	op, err := spec.Resolve()
	if err != nil {
		return writeBadRequest(c, err.Error())
	}

	alloc := sram.New(op.Caps.SramSizeBytes)
	var cfg strategy.TensorConfig
	fits := strategy.TryStrategyX(op, &cfg, &alloc)

	resp := PlanResponse{
		ID:     "plan_" + uuid.NewString(),
		Object: "plan",
		Caps:   op.Caps.Name,
		Fits:   fits,
	}
	if fits {
		resp.Config = &cfg
	}
	s.log.Info("plan evaluated",
		"id", resp.ID,
		"operation", op.Operation.String(),
		"fits", fits,
	)
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleListCaps(c *echo.Context) error {
	return c.JSON(http.StatusOK, hw.Presets())
}

func (s *Server) handleGetCaps(c *echo.Context) error {
	caps, err := hw.Preset(c.Param("name"))
	if err != nil {
		return writeNotFound(c, err.Error())
	}
	return c.JSON(http.StatusOK, caps)
}

func writeBadRequest(c *echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, newErrorResponse("invalid_request_error", msg))
}

func writeNotFound(c *echo.Context, msg string) error {
	return c.JSON(http.StatusNotFound, newErrorResponse("not_found_error", msg))
}

func decodeJSON[T any](r io.Reader) (*T, error) {
	var v T
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode request: %w", err)
	}
	return &v, nil
}
