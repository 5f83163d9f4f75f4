package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"postboard/internal/core/errs"
)

var registerTagNames sync.Once

// useJSONFieldNames makes validation errors name fields by their json tag.
func useJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// bindJSON binds the request body into req. An empty body is accepted for
// requests whose fields are all optional.
func bindJSON(c *gin.Context, req interface{}, allowEmpty bool) bool {
	err := c.ShouldBindJSON(req)
	if err == nil || (allowEmpty && errors.Is(err, io.EOF)) {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": details})
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
	return false
}

// respondError maps a use-case error onto its status code and body.
func respondError(c *gin.Context, err error) {
	var nf *errs.NotFoundError
	var cr *errs.CreationRejectedError

	switch {
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, gin.H{"error": nf.Error()})
	case errors.As(err, &cr):
		_ = c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": cr.Entity + " could not be created"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
