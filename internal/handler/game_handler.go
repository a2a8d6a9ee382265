package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"releaseradar/backend/internal/models"
	"releaseradar/backend/internal/service"
)

// region --- DTOs ---

// GameResponse is the public view of one catalog game.
type GameResponse struct {
	ID               string   `json:"id"`
	SteamAppID       *int64   `json:"steam_app_id"`
	Name             string   `json:"name"`
	ReleaseDate      *string  `json:"release_date"`
	Followers        *int     `json:"followers"`
	StoreURL         string   `json:"store_url"`
	ImageURL         string   `json:"image_url"`
	ShortDescription string   `json:"short_description"`
	Windows          bool     `json:"windows"`
	Mac              bool     `json:"mac"`
	Linux            bool     `json:"linux"`
	Tags             []string `json:"tags"`
}

func newGameResponse(game models.Game) GameResponse {
	var releaseDate *string
	if game.ReleaseDate != nil {
		formatted := game.ReleaseDate.Format("2006-01-02")
		releaseDate = &formatted
	}

	return GameResponse{
		ID:               game.ID.String(),
		SteamAppID:       game.SteamAppID,
		Name:             game.Name,
		ReleaseDate:      releaseDate,
		Followers:        game.Followers,
		StoreURL:         game.StoreURL,
		ImageURL:         game.ImageURL,
		ShortDescription: game.ShortDescription,
		Windows:          game.Windows,
		Mac:              game.Mac,
		Linux:            game.Linux,
		Tags:             game.TagNames(),
	}
}

// CalendarResponse is the per-day release count view for one month.
type CalendarResponse struct {
	Month string               `json:"month"`
	Days  []models.CalendarDay `json:"days"`
}

// SyncResponse reports one synchronization run. SnapshotError is set when
// the catalog committed but the analytics snapshot could not be written.
type SyncResponse struct {
	Added         int    `json:"added"`
	Pruned        int    `json:"pruned"`
	Skipped       int    `json:"skipped"`
	Rows          int    `json:"rows"`
	SnapshotError string `json:"snapshot_error,omitempty"`
}

// endregion

func (h *Handler) monthQuery(c *gin.Context) (models.GamesQuery, error) {
	month, err := service.ParseMonth(c.Query("month"))
	if err != nil {
		return models.GamesQuery{}, err
	}
	return models.GamesQuery{
		Month:     month,
		Platforms: splitCommaSeparated(c.QueryArray("platform")),
		Tags:      splitCommaSeparated(c.QueryArray("tag")),
	}, nil
}

// GetGames godoc
// @Summary      List games releasing in a month
// @Description  Retrieves the month's games ordered by release date, with optional platform and tag filters.
// @Tags         games
// @Produce      json
// @Param        month    query  string  true   "Target month (YYYY-MM)"
// @Param        platform query  string  false  "Platform filter (windows, mac, linux); repeatable or comma-separated"
// @Param        tag      query  string  false  "Tag filter; repeatable or comma-separated"
// @Success      200  {array}   GameResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /games [get]
func (h *Handler) GetGames(c *gin.Context) {
	query, err := h.monthQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}

	games, err := h.games.GamesForMonth(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]GameResponse, 0, len(games))
	for _, game := range games {
		response = append(response, newGameResponse(game))
	}
	c.JSON(http.StatusOK, response)
}

// GetCalendar godoc
// @Summary      Get the month's release calendar
// @Description  Maps each release date of the month to the number of games releasing on it.
// @Tags         games
// @Produce      json
// @Param        month    query  string  true   "Target month (YYYY-MM)"
// @Param        platform query  string  false  "Platform filter (windows, mac, linux)"
// @Param        tag      query  string  false  "Tag filter"
// @Success      200  {object}  CalendarResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /games/calendar [get]
func (h *Handler) GetCalendar(c *gin.Context) {
	query, err := h.monthQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}

	days, err := h.games.Calendar(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, CalendarResponse{
		Month: query.Month.Format("2006-01"),
		Days:  days,
	})
}

// SyncMonth godoc
// @Summary      Synchronize the catalog for a month
// @Description  Discovers and enriches upcoming releases for the month, reconciles the catalog and snapshots it into the analytics store. A failed snapshot write is reported beside the committed catalog result.
// @Tags         games
// @Produce      json
// @Security     BearerAuth
// @Param        month query string true "Target month (YYYY-MM)"
// @Success      200  {object}  SyncResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      502  {object}  ErrorResponse "Catalog source unavailable"
// @Router       /games/sync [post]
func (h *Handler) SyncMonth(c *gin.Context) {
	month, err := service.ParseMonth(c.Query("month"))
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.sync.Synchronize(c.Request.Context(), month)
	if err != nil && result == nil {
		respondError(c, err)
		return
	}

	response := SyncResponse{
		Added:   result.Added(),
		Pruned:  result.Pruned,
		Skipped: len(result.Skipped),
		Rows:    result.Rows,
	}
	if err != nil {
		response.SnapshotError = err.Error()
	}
	c.JSON(http.StatusOK, response)
}
