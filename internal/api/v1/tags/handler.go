package tags

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/veewoo/veewoo-prompt/internal/services"
	"github.com/veewoo/veewoo-prompt/internal/utils"
)

type Handler struct {
	tags *services.TagService
}

func NewHandler(tags *services.TagService) *Handler {
	return &Handler{tags: tags}
}

// List godoc
// @Summary List tags
// @Description Get all tags in the shared namespace
// @Tags tags
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=[]models.Tag}
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /tags [get]
func (h *Handler) List(c *gin.Context) {
	tags, err := h.tags.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Could not fetch tags"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", tags))
}
