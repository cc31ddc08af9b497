package prompts

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/veewoo/veewoo-prompt/internal/models"
	"github.com/veewoo/veewoo-prompt/internal/placeholder"
	"github.com/veewoo/veewoo-prompt/internal/services"
	"github.com/veewoo/veewoo-prompt/internal/utils"
)

type Handler struct {
	prompts *services.PromptService
}

func NewHandler(prompts *services.PromptService) *Handler {
	return &Handler{prompts: prompts}
}

// List godoc
// @Summary List prompts
// @Description Get the current user's prompts, newest first
// @Tags prompts
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=[]services.PromptView}
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /prompts [get]
func (h *Handler) List(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}
	user := userVal.(models.User)

	views, err := h.prompts.List(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Could not fetch prompts"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", views))
}

// Get godoc
// @Summary Get a prompt
// @Description Get one of the current user's prompts by ID
// @Tags prompts
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Prompt ID"
// @Success 200 {object} utils.Response{data=services.PromptView}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /prompts/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}
	user := userVal.(models.User)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid ID"))
		return
	}

	view, err := h.prompts.Get(user.ID, uint(id))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", view))
}

// Create godoc
// @Summary Create a prompt
// @Description Create a prompt with tags and ordered placeholder variables
// @Tags prompts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body SavePromptRequest true "Create Prompt Request"
// @Success 200 {object} utils.Response{data=SavePromptResponse}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /prompts [post]
func (h *Handler) Create(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}
	user := userVal.(models.User)

	var req SavePromptRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	view, report, err := h.prompts.Create(user.ID, toInput(req))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Prompt created successfully", SavePromptResponse{
		Prompt: view,
		Report: report,
	}))
}

// Update godoc
// @Summary Update a prompt
// @Description Replace a prompt's text, tags and placeholder variables
// @Tags prompts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Prompt ID"
// @Param request body SavePromptRequest true "Update Prompt Request"
// @Success 200 {object} utils.Response{data=SavePromptResponse}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /prompts/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}
	user := userVal.(models.User)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid ID"))
		return
	}

	var req SavePromptRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	view, report, err := h.prompts.Update(user.ID, uint(id), toInput(req))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Prompt updated successfully", SavePromptResponse{
		Prompt: view,
		Report: report,
	}))
}

// Delete godoc
// @Summary Delete a prompt
// @Description Delete a prompt together with its variables, options and tag links
// @Tags prompts
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Prompt ID"
// @Success 200 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /prompts/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}
	user := userVal.(models.User)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid ID"))
		return
	}

	if err := h.prompts.Delete(user.ID, uint(id)); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Prompt deleted successfully", nil))
}

// Render godoc
// @Summary Render a prompt
// @Description Substitute values into the prompt's placeholder tokens
// @Tags prompts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Prompt ID"
// @Param request body RenderRequest true "Render Request"
// @Success 200 {object} utils.Response{data=RenderResponse}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /prompts/{id}/render [post]
func (h *Handler) Render(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}
	user := userVal.(models.User)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid ID"))
		return
	}

	var req RenderRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	mode := placeholder.ModePreview
	if req.Mode == string(placeholder.ModeFinal) {
		mode = placeholder.ModeFinal
	}

	text, err := h.prompts.Render(user.ID, uint(id), req.Values, mode)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", RenderResponse{Text: text}))
}

// toInput stages the submitted variables through the ordered model so the
// service sees the same sequence semantics the editor works with.
func toInput(req SavePromptRequest) services.PromptInput {
	list := placeholder.NewList()
	for _, v := range req.PlaceholderVariables {
		list.Append(placeholder.Variable{
			Name:    v.Name,
			Type:    placeholder.TypeFromString(v.Type),
			Options: v.Options,
		})
	}
	return services.PromptInput{
		Title:     req.Title,
		Text:      req.PromptText,
		TagNames:  req.TagNames,
		Variables: list.Variables(),
	}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrPromptNotFound) {
		c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Prompt not found"))
		return
	}

	var writeErr *services.WriteError
	if errors.As(err, &writeErr) {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, writeErr.Phase))
		return
	}

	c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
}
