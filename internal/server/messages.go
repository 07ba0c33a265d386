package server

import (
	"errors"

	"github.com/joseph-ayodele/docfacts/internal/common"
	"github.com/joseph-ayodele/docfacts/internal/pipeline"
)

// issueMessage turns a pipeline issue into the banner text shown to the user.
func issueMessage(is pipeline.Issue, credential string) string {
	switch {
	case errors.Is(is.Err, common.ErrProviderUnavailable):
		return "Cannot run AI extraction without the " + credential + "."
	case errors.Is(is.Err, common.ErrModelCall):
		return "Model API Error: Please check your " + credential + " and model configuration. Details: " + is.Message
	case errors.Is(is.Err, common.ErrModelResponse):
		return "AI response was not valid JSON. Try again or modify the prompt instructions."
	case is.Stage == common.StageInput:
		return "Error reading PDF: " + is.Message
	default:
		return "Extraction issue: " + is.Message
	}
}
