package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"aimscope/internal/charts"
	"aimscope/internal/models"
	"aimscope/internal/report"
	"aimscope/internal/repository"
)

// RunsHandler serves stored analysis runs.
type RunsHandler struct {
	log *zap.Logger
}

func NewRunsHandler(log *zap.Logger) *RunsHandler {
	return &RunsHandler{log: log}
}

// List returns all runs, newest first, without events.
func (h *RunsHandler) List(c *gin.Context) {
	runs, err := repository.ListRuns(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to list runs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list runs"})
		return
	}
	c.JSON(http.StatusOK, runs)
}

// Get returns one run with its labeled events.
func (h *RunsHandler) Get(c *gin.Context) {
	run, ok := h.loadRun(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, run)
}

// Report renders the plain-text aggregate report for one run.
func (h *RunsHandler) Report(c *gin.Context) {
	run, ok := h.loadRun(c)
	if !ok {
		return
	}

	smooth, jittery := repository.Partitions(run)
	c.Header("Content-Type", "text/plain; charset=utf-8")
	if err := report.Write(c.Writer, smooth, jittery); err != nil {
		h.log.Error("Failed to render report", zap.String("run_id", run.ID), zap.Error(err))
	}
}

// Charts renders the chart page for one run.
func (h *RunsHandler) Charts(c *gin.Context) {
	run, ok := h.loadRun(c)
	if !ok {
		return
	}

	smooth, jittery := repository.Partitions(run)
	page := charts.NewPage(run.Source, smooth, jittery)

	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := page.Render(c.Writer); err != nil {
		h.log.Error("Failed to render charts", zap.String("run_id", run.ID), zap.Error(err))
	}
}

// Delete removes a run and its events.
func (h *RunsHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	err := repository.DeleteRun(c.Request.Context(), id)
	if errors.Is(err, repository.ErrRunNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}
	if err != nil {
		h.log.Error("Failed to delete run", zap.String("run_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete run"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RunsHandler) loadRun(c *gin.Context) (*models.Run, bool) {
	id := c.Param("id")
	r, err := repository.GetRun(c.Request.Context(), id)
	if errors.Is(err, repository.ErrRunNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return nil, false
	}
	if err != nil {
		h.log.Error("Failed to load run", zap.String("run_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load run"})
		return nil, false
	}
	return r, true
}
