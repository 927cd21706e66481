package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"aimscope/internal/analysis"
	"aimscope/internal/capture"
	"aimscope/internal/repository"
)

// ImportHandler accepts an uploaded session log, analyzes it, and stores the
// classified result.
type ImportHandler struct {
	log      *zap.Logger
	pipeline *analysis.Pipeline
}

func NewImportHandler(log *zap.Logger, opts analysis.Options) *ImportHandler {
	return &ImportHandler{
		log:      log,
		pipeline: analysis.NewPipeline(log, opts),
	}
}

// Import handles a multipart upload with a "file" field holding the tracker's
// CSV session log. A session with no aiming events is accepted but reported
// as such; nothing is stored for it.
func (h *ImportHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing session log upload"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		h.log.Error("Failed to open upload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable upload"})
		return
	}
	defer f.Close()

	samples, skipped, err := capture.Read(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if skipped > 0 {
		h.log.Warn("Skipped malformed rows in uploaded session log",
			zap.String("file", fileHeader.Filename),
			zap.Int("skipped", skipped))
	}

	res := h.pipeline.Run(fileHeader.Filename, samples)
	if res.EventCount() == 0 {
		c.JSON(http.StatusOK, gin.H{
			"status":      "no aiming events found",
			"sampleCount": res.SampleCount,
			"moveCount":   res.MoveCount,
		})
		return
	}

	run, err := repository.SaveResult(c.Request.Context(), res)
	if errors.Is(err, repository.ErrDuplicateRun) {
		c.JSON(http.StatusConflict, gin.H{"error": "recording already analyzed"})
		return
	}
	if err != nil {
		h.log.Error("Failed to store run", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store run"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":           run.ID,
		"source":       run.Source,
		"events":       run.SmoothCount + run.JitteryCount,
		"smoothCount":  run.SmoothCount,
		"jitteryCount": run.JitteryCount,
		"skippedRows":  skipped,
	})
}
