package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alittlebirdy/briefgen/app/database"
)

// Handler serves run history and health for the daemon's status API
type Handler struct {
	runRepo database.RunRepositoryInterface
	version string
}

func NewHandler(runRepo database.RunRepositoryInterface, version string) *Handler {
	return &Handler{runRepo: runRepo, version: version}
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: h.version,
	})
}

// ListRuns returns the most recent publish runs across all verticals
func (h *Handler) ListRuns(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 500 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer between 1 and 500"})
			return
		}
		limit = parsed
	}

	runs, err := h.runRepo.ListRecent(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list runs"})
		return
	}

	responses := make([]RunResponse, 0, len(runs))
	for _, run := range runs {
		responses = append(responses, RunResponse{
			Vertical:     run.Vertical,
			RunDate:      run.RunDate,
			Status:       string(run.Status),
			ItemsFetched: run.ItemsFetched,
			ItemsUsed:    run.ItemsUsed,
			WordCount:    run.WordCount,
			Error:        run.Error,
			CreatedAt:    run.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"runs": responses})
}
