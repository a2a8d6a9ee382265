package handler

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"releaseradar/backend/internal/service"
)

// GenreResponse is one row of the top-genres answer. AvgFollowers is
// rounded to the nearest integer.
type GenreResponse struct {
	Genre        string `json:"genre"`
	Games        int    `json:"games"`
	AvgFollowers int    `json:"avgFollowers"`
}

// TopGenres godoc
// @Summary      Top genres for a month
// @Description  Ranks the month's genres by game count, ties broken by average followers. Served from the analytics store when possible, otherwise computed from the catalog.
// @Tags         analytics
// @Produce      json
// @Param        month query string true  "Target month (YYYY-MM)"
// @Param        top   query int    false "Number of genres to return" default(5)
// @Success      200  {array}   GenreResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /analytics/genres [get]
func (h *Handler) TopGenres(c *gin.Context) {
	month, err := service.ParseMonth(c.Query("month"))
	if err != nil {
		respondError(c, err)
		return
	}

	top, err := strconv.Atoi(c.DefaultQuery("top", "5"))
	if err != nil || top < 1 {
		top = 5
	}

	aggs, err := h.analytics.TopGenres(c.Request.Context(), month, top)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]GenreResponse, 0, len(aggs))
	for _, agg := range aggs {
		response = append(response, GenreResponse{
			Genre:        agg.Genre,
			Games:        agg.Games,
			AvgFollowers: int(math.Round(agg.AvgFollowers)),
		})
	}
	c.JSON(http.StatusOK, response)
}

// GenreDynamics godoc
// @Summary      Genre dynamics over the trailing three months
// @Description  Per-month game counts and average followers for the top genres. Backed exclusively by the analytics store; reports 503 when it is unreachable.
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  models.GenreDynamics
// @Failure      503  {object}  ErrorResponse "Analytics store unavailable"
// @Router       /analytics/dynamics [get]
func (h *Handler) GenreDynamics(c *gin.Context) {
	dynamics, err := h.analytics.GenreDynamics(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dynamics)
}
