package schedule

import "fmt"

// SpanConfig sets the per-kind session length in slots. Duration is derived
// from the session kind alone, never supplied by callers.
type SpanConfig struct {
	Lecture  int `json:"lecture"`
	Lab      int `json:"lab"`
	Tutorial int `json:"tutorial"`
	Lunch    int `json:"lunch"`
}

// Config defines scheduling parameters.
type Config struct {
	// AttemptBudget bounds the randomized fallback search per request.
	AttemptBudget int `json:"attempt_budget"`
	// PriorityDepartments receive an enlarged budget and retry escalation
	// after a lab failure.
	PriorityDepartments []string `json:"priority_departments"`
	// PriorityMultiplier scales the base budget for priority departments.
	PriorityMultiplier float64 `json:"priority_multiplier"`
	// LabFailureFactor multiplies a priority department's budget for the
	// lecture/tutorial requests of a course whose lab could not be placed.
	LabFailureFactor int `json:"lab_failure_factor"`
	// Seed feeds the randomized phases; zero selects a time-based seed.
	Seed  int64      `json:"seed"`
	Spans SpanConfig `json:"spans"`
}

// SetDefaults applies the standard session lengths and search budget.
func (c *Config) SetDefaults() {
	if c.AttemptBudget == 0 {
		c.AttemptBudget = 5000
	}
	if c.PriorityMultiplier == 0 {
		c.PriorityMultiplier = 1.5
	}
	if c.LabFailureFactor == 0 {
		c.LabFailureFactor = 2
	}
	if c.Spans.Lecture == 0 {
		c.Spans.Lecture = 3
	}
	if c.Spans.Lab == 0 {
		c.Spans.Lab = 4
	}
	if c.Spans.Tutorial == 0 {
		c.Spans.Tutorial = 2
	}
	if c.Spans.Lunch == 0 {
		c.Spans.Lunch = 2
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.AttemptBudget < 0 {
		return fmt.Errorf("attempt_budget must not be negative")
	}
	if c.PriorityMultiplier < 1 {
		return fmt.Errorf("priority_multiplier must be at least 1")
	}
	if c.LabFailureFactor < 1 {
		return fmt.Errorf("lab_failure_factor must be at least 1")
	}
	for _, s := range []int{c.Spans.Lecture, c.Spans.Lab, c.Spans.Tutorial, c.Spans.Lunch} {
		if s <= 0 {
			return fmt.Errorf("session spans must be positive")
		}
	}
	return nil
}

// IsPriority reports whether the department is in the priority set.
func (c Config) IsPriority(department string) bool {
	for _, d := range c.PriorityDepartments {
		if d == department {
			return true
		}
	}
	return false
}

// DepartmentBudget returns the attempt budget for the department, scaled for
// priority departments.
func (c Config) DepartmentBudget(department string) int {
	if c.IsPriority(department) {
		return int(float64(c.AttemptBudget) * c.PriorityMultiplier)
	}
	return c.AttemptBudget
}
