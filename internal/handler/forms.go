package handler

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mmynk/yatube/internal/apperrors"
)

// formView is what templates see for a form: submitted values and field errors.
type formView struct {
	Values map[string]string
	Errors map[string]string
}

func newForm(values map[string]string) formView {
	if values == nil {
		values = map[string]string{}
	}
	return formView{Values: values, Errors: map[string]string{}}
}

func (f formView) withErrors(verr *apperrors.ValidationError) formView {
	for field, msg := range verr.Fields {
		f.Errors[field] = msg
	}
	return f
}

// bindForm binds a submitted form into dst. Malformed bodies become a form-level error.
func bindForm(c *gin.Context, dst any) *apperrors.ValidationError {
	if err := c.ShouldBind(dst); err != nil {
		return apperrors.NewValidationError().Add("form", "The submitted form could not be read.")
	}
	return nil
}

// uploadedFile returns the named multipart file, or nil when none was sent.
func uploadedFile(c *gin.Context, field string) *multipart.FileHeader {
	fh, err := c.FormFile(field)
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
			_ = c.Error(err)
		}
		return nil
	}
	return fh
}
