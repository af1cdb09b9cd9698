package handler

import (
	"strings"

	dErrors "dlscan/pkg/domain-errors"
)

// ExtractRequest carries already transcribed text.
type ExtractRequest struct {
	Text string `json:"text"`
}

// Validate rejects blank text.
func (r *ExtractRequest) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return dErrors.New(dErrors.CodeValidation, "text is required")
	}
	return nil
}
