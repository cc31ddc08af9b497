package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ValidationErrorDetail describes one failed field.
type ValidationErrorDetail struct {
	Field    string      `json:"field"`
	Message  string      `json:"message"`
	Expected string      `json:"expected"`
	Received interface{} `json:"received"`
}

type ValidationErrorData struct {
	Errors []ValidationErrorDetail `json:"errors"`
}

// BindAndValidate binds the JSON body into obj and, on failure, writes a 400
// response with structured field errors. Returns false when the handler
// should stop.
func BindAndValidate(c *gin.Context, obj interface{}) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	var details []ValidationErrorDetail

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			detail := ValidationErrorDetail{
				Field:    e.Field(),
				Message:  fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", e.Field(), e.Tag()),
				Expected: e.Param(),
				Received: e.Value(),
			}
			if detail.Expected == "" {
				detail.Expected = e.Tag()
			}

			switch e.Tag() {
			case "required":
				detail.Message = fmt.Sprintf("Field '%s' is required", e.Field())
				detail.Expected = "not null"
			case "oneof":
				detail.Message = fmt.Sprintf("Field '%s' must be one of: %s", e.Field(), e.Param())
			case "min":
				detail.Message = fmt.Sprintf("Field '%s' must be at least %s characters long", e.Field(), e.Param())
				detail.Expected = fmt.Sprintf("min length %s", e.Param())
			case "max":
				detail.Message = fmt.Sprintf("Field '%s' must be at most %s characters long", e.Field(), e.Param())
				detail.Expected = fmt.Sprintf("max length %s", e.Param())
			}

			details = append(details, detail)
		}
	} else if jsonErr, ok := err.(*json.UnmarshalTypeError); ok {
		details = append(details, ValidationErrorDetail{
			Field:    jsonErr.Field,
			Message:  fmt.Sprintf("Field '%s' has invalid type", jsonErr.Field),
			Expected: jsonErr.Type.String(),
			Received: jsonErr.Value,
		})
	} else {
		details = append(details, ValidationErrorDetail{
			Field:    "body",
			Message:  "Malformed JSON or invalid request body",
			Expected: "valid JSON",
			Received: "invalid",
		})
	}

	c.JSON(http.StatusBadRequest, Response{
		Status:  http.StatusBadRequest,
		Message: "Invalid request parameters",
		Data:    ValidationErrorData{Errors: details},
	})
	return false
}
