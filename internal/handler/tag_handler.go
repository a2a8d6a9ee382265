package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"releaseradar/backend/internal/models"
)

// TagResponse is the public view of one tag.
type TagResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func newTagResponse(tag models.Tag) TagResponse {
	return TagResponse{ID: tag.ID, Name: tag.Name}
}

// GetTags godoc
// @Summary      Get all tags
// @Description  Retrieves all tags known to the catalog, ordered by name.
// @Tags         tags
// @Produce      json
// @Success      200  {array}  TagResponse
// @Router       /tags [get]
func (h *Handler) GetTags(c *gin.Context) {
	tags, err := h.store.ListTags(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]TagResponse, 0, len(tags))
	for _, tag := range tags {
		response = append(response, newTagResponse(tag))
	}
	c.JSON(http.StatusOK, response)
}

// DeleteTag godoc
// @Summary      Delete a tag
// @Description  Removes a tag and its game associations. Synchronization never deletes tags, so this is the only way to prune orphans.
// @Tags         admin-tags
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Tag ID"
// @Success      200  {object}  map[string]string "{"message": "Tag deleted"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Failure      404  {object}  ErrorResponse "Tag not found"
// @Router       /admin/tags/{id} [delete]
func (h *Handler) DeleteTag(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid ID"})
		return
	}

	if err := h.store.DeleteTag(c.Request.Context(), uint(id)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tag deleted"})
}
