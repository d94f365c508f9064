package schedule

import "testing"

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()
	if cfg.AttemptBudget != 5000 {
		t.Errorf("attempt budget = %d", cfg.AttemptBudget)
	}
	if cfg.Spans.Lecture != 3 || cfg.Spans.Lab != 4 || cfg.Spans.Tutorial != 2 || cfg.Spans.Lunch != 2 {
		t.Errorf("spans = %+v", cfg.Spans)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{AttemptBudget: -1}
	cfg.SetDefaults()
	if err := cfg.Validate(); err == nil {
		t.Error("negative budget must not validate")
	}
	cfg = Config{PriorityMultiplier: 0.5}
	cfg.SetDefaults()
	if err := cfg.Validate(); err == nil {
		t.Error("multiplier below 1 must not validate")
	}
}

func TestDepartmentBudget(t *testing.T) {
	cfg := Config{AttemptBudget: 1000, PriorityDepartments: []string{"DSAI", "ECE"}}
	cfg.SetDefaults()
	if got := cfg.DepartmentBudget("CSE"); got != 1000 {
		t.Errorf("regular department budget = %d", got)
	}
	if got := cfg.DepartmentBudget("DSAI"); got != 1500 {
		t.Errorf("priority department budget = %d", got)
	}
	if !cfg.IsPriority("ECE") || cfg.IsPriority("MECH") {
		t.Error("priority set misread")
	}
}
