package hierarchy

import (
	"net/http"

	"github.com/compasshq/compass/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("HIERARCHY")

var CodeInvalidLevel = ErrRegistry.Register("INVALID_LEVEL", errx.TypeValidation, http.StatusBadRequest, "Unknown seniority level")

func errInvalidLevel(level string) *errx.Error {
	return ErrRegistry.New(CodeInvalidLevel).WithDetail("level", level)
}
