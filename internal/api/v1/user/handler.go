package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/veewoo/veewoo-prompt/internal/models"
	"github.com/veewoo/veewoo-prompt/internal/utils"
)

type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Me godoc
// @Summary Get the current user
// @Description Get the profile of the authenticated user
// @Tags user
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=UserResponse}
// @Failure 401 {object} utils.Response
// @Router /user/me [get]
func Me(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
		return
	}
	u := userVal.(models.User)

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Role:     u.Role,
	}))
}
