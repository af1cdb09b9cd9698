package e2e

import (
	"github.com/cucumber/godog"

	"dlscan/e2e/steps/common"
	"dlscan/e2e/steps/extract"
	"dlscan/e2e/steps/ratelimit"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Register common steps (background, generic requests, assertions)
	common.RegisterSteps(ctx, tc)

	// Register extraction-specific steps
	extract.RegisterSteps(ctx, tc)

	ratelimit.RegisterSteps(ctx, tc)
}
