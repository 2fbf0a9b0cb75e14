package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
)

// ErrorItem is one entry of a validation failure response.
type ErrorItem struct {
	Msg   string `json:"msg"`
	Param string `json:"param,omitempty"`
}

// validationResponse renders a binding error as the documented
// {"errors":[{"msg":...,"param":...}]} payload.
func validationResponse(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []ErrorItem{{Msg: "Invalid request body"}}})
		return
	}

	items := make([]ErrorItem, 0, len(verrs))
	for _, fe := range verrs {
		items = append(items, ErrorItem{Msg: fieldMessage(fe), Param: strings.ToLower(fe.Field())})
	}
	c.JSON(http.StatusBadRequest, gin.H{"errors": items})
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "email":
		return "Please include a valid email"
	case "min":
		return "Please enter a password with 6 or more characters"
	default:
		if field == "" {
			return "Invalid value"
		}
		return strings.ToUpper(field[:1]) + field[1:] + " is required"
	}
}

// errorsResponse renders a non-field failure (bad credentials, duplicate
// email) in the same errors-list shape.
func errorsResponse(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"errors": []ErrorItem{{Msg: msg}}})
}

// serverError logs the cause and returns the generic 500 payload; internal
// detail never reaches the client.
func serverError(c *gin.Context, err error) {
	log.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
}
