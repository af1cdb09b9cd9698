package extract

import (
	"context"
	"strings"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body interface{}) error
}

// RegisterSteps registers text extraction step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &extractSteps{tc: tc}

	ctx.Step(`^I extract a "([^"]*)" licence from:$`, steps.extractFromDocString)
	ctx.Step(`^I extract a "([^"]*)" licence from empty text$`, steps.extractEmpty)
}

type extractSteps struct {
	tc TestContext
}

func (s *extractSteps) extractFromDocString(ctx context.Context, docType string, text *godog.DocString) error {
	return s.tc.POST("/extract/"+docType, map[string]interface{}{
		"text": strings.TrimSpace(text.Content),
	})
}

func (s *extractSteps) extractEmpty(ctx context.Context, docType string) error {
	return s.tc.POST("/extract/"+docType, map[string]interface{}{"text": "  "})
}
