package matching

import (
	"net/http"

	"github.com/compasshq/compass/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("MATCHING")

// Error codes
var (
	CodeInvalidSalary        = ErrRegistry.Register("INVALID_SALARY", errx.TypeValidation, http.StatusBadRequest, "Salary range is structurally invalid")
	CodeInvalidExperience    = ErrRegistry.Register("INVALID_EXPERIENCE", errx.TypeValidation, http.StatusBadRequest, "Experience value is structurally invalid")
	CodeInvalidTransportMode = ErrRegistry.Register("INVALID_TRANSPORT_MODE", errx.TypeValidation, http.StatusBadRequest, "Unknown transport mode")
	CodeNilProfile           = ErrRegistry.Register("NIL_PROFILE", errx.TypeValidation, http.StatusBadRequest, "Candidate profile is required")
	CodeNilRequisition       = ErrRegistry.Register("NIL_REQUISITION", errx.TypeValidation, http.StatusBadRequest, "Job requisition is required")
)

// Helper functions
func ErrInvalidSalary() *errx.Error {
	return ErrRegistry.New(CodeInvalidSalary)
}

func ErrInvalidExperience() *errx.Error {
	return ErrRegistry.New(CodeInvalidExperience)
}

func ErrInvalidTransportMode(mode string) *errx.Error {
	return ErrRegistry.New(CodeInvalidTransportMode).WithDetail("mode", mode)
}

func ErrNilProfile() *errx.Error {
	return ErrRegistry.New(CodeNilProfile)
}

func ErrNilRequisition() *errx.Error {
	return ErrRegistry.New(CodeNilRequisition)
}
