package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body interface{}) error
	POSTRaw(path, body string) error
	GET(path string) error
	GetLastResponseBody() []byte
	GetResponseField(field string) (interface{}, error)
	Save(key, value string)
	Saved(key string) string
}

// RegisterSteps registers employee directory step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &directorySteps{tc: tc}

	ctx.Step(`^I create an employee "([^"]*)" "([^"]*)" born (-?\d+)-(\d+)-(\d+)$`, steps.createEmployee)
	ctx.Step(`^I create an employee "([^"]*)" "([^"]*)" who turns 18 today$`, steps.createEmployeeTurning18Today)
	ctx.Step(`^I create an employee "([^"]*)" "([^"]*)" who turns 18 tomorrow$`, steps.createEmployeeTurning18Tomorrow)
	ctx.Step(`^I POST the raw body '([^']*)' to "([^"]*)"$`, steps.postRaw)
	ctx.Step(`^I save the employee id$`, steps.saveEmployeeID)
	ctx.Step(`^I fetch the saved employee$`, steps.fetchSavedEmployee)
	ctx.Step(`^the response should be a list of at least (\d+) employees?$`, steps.listAtLeast)
	ctx.Step(`^the response should be an empty list$`, steps.emptyList)
}

type directorySteps struct {
	tc TestContext
}

func (s *directorySteps) createEmployee(ctx context.Context, first, last string, year, month, day int) error {
	return s.tc.POST("/user", map[string]interface{}{
		"first_name":     first,
		"last_name":      last,
		"year_of_birth":  year,
		"month_of_birth": month,
		"day_of_birth":   day,
	})
}

func (s *directorySteps) createEmployeeTurning18Today(ctx context.Context, first, last string) error {
	now := time.Now().UTC()
	return s.createEmployee(ctx, first, last, now.Year()-18, int(now.Month()), now.Day())
}

func (s *directorySteps) createEmployeeTurning18Tomorrow(ctx context.Context, first, last string) error {
	tomorrow := time.Now().UTC().AddDate(0, 0, 1)
	return s.createEmployee(ctx, first, last, tomorrow.Year()-18, int(tomorrow.Month()), tomorrow.Day())
}

func (s *directorySteps) postRaw(ctx context.Context, body, path string) error {
	return s.tc.POSTRaw(path, body)
}

func (s *directorySteps) saveEmployeeID(ctx context.Context) error {
	id, err := s.tc.GetResponseField("id")
	if err != nil {
		return err
	}
	s.tc.Save("employee_id", fmt.Sprint(id))
	return nil
}

func (s *directorySteps) fetchSavedEmployee(ctx context.Context) error {
	return s.tc.GET("/user/" + s.tc.Saved("employee_id"))
}

func (s *directorySteps) listAtLeast(ctx context.Context, n int) error {
	var list []map[string]interface{}
	if err := json.Unmarshal(s.tc.GetLastResponseBody(), &list); err != nil {
		return fmt.Errorf("response is not a JSON array: %w", err)
	}
	if len(list) < n {
		return fmt.Errorf("expected at least %d employees, got %d", n, len(list))
	}
	return nil
}

func (s *directorySteps) emptyList(ctx context.Context) error {
	var list []map[string]interface{}
	if err := json.Unmarshal(s.tc.GetLastResponseBody(), &list); err != nil {
		return fmt.Errorf("response is not a JSON array: %w", err)
	}
	if list == nil || len(list) != 0 {
		return fmt.Errorf("expected an empty list, got %s", s.tc.GetLastResponseBody())
	}
	return nil
}
