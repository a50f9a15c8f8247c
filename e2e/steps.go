package e2e

import (
	"github.com/cucumber/godog"

	"staffdir/e2e/steps/common"
	"staffdir/e2e/steps/directory"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Generic requests and response assertions
	common.RegisterSteps(ctx, tc)

	// Employee directory flows
	directory.RegisterSteps(ctx, tc)
}
