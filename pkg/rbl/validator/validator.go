package validator

import (
	"fmt"
	"regexp"

	"github.com/robfig/cron/v3"

	"runbook-hq/runbook/internal/helpers"
	"runbook-hq/runbook/pkg/rbl/ast"
	rblerrors "runbook-hq/runbook/pkg/rbl/errors"
)

// Validator checks parsed runbooks for structural problems.
type Validator struct{}

// NewValidator creates a new validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks the runbook and returns an *errors.ErrorList with all
// problems found, or nil if the runbook is valid.
func (v *Validator) Validate(rb *ast.Runbook) error {
	el := rblerrors.NewErrorList()

	if rb.Name == "" {
		el.AddErrorWithSuggestion(rblerrors.ErrorTypeStructural,
			"runbook is missing a name", rb.Location,
			"add a top-level 'name' field")
	}

	seenPlays := make(map[string]bool)
	for _, play := range rb.Plays {
		v.validatePlay(rb, play, seenPlays, el)
	}
	if len(rb.Plays) == 0 {
		el.AddError(rblerrors.ErrorTypeStructural,
			"runbook has no plays", rb.Location)
	}

	return el.ToError()
}

func (v *Validator) validatePlay(rb *ast.Runbook, play *ast.Play, seen map[string]bool, el *rblerrors.ErrorList) {
	if play.Name == "" {
		el.AddError(rblerrors.ErrorTypeStructural,
			"play is missing a name", play.Location)
	} else if seen[play.Name] {
		el.AddError(rblerrors.ErrorTypeStructural,
			fmt.Sprintf("duplicate play name %q", play.Name), play.Location)
	}
	seen[play.Name] = true

	if play.Schedule != "" {
		if _, err := cron.ParseStandard(play.Schedule); err != nil {
			el.AddErrorWithSuggestion(rblerrors.ErrorTypeSemantic,
				fmt.Sprintf("invalid schedule %q: %v", play.Schedule, err), play.Location,
				"use a standard five-field cron expression, e.g. '0 4 * * *'")
		}
	}

	if play.Serial != "" {
		// Inventory size is unknown at lint time; 100 items exercises
		// the percentage arithmetic without changing the outcome of the
		// syntax check.
		if _, err := helpers.PctToCount(play.Serial, 100, 1); err != nil {
			el.AddErrorWithSuggestion(rblerrors.ErrorTypeSemantic,
				fmt.Sprintf("invalid serial value %q: %v", play.Serial, err), play.Location,
				"use an integer count ('5') or a percentage ('30%')")
		}
	}

	if dupes := len(play.Tags) - len(helpers.Dedupe(play.Tags)); dupes > 0 {
		el.AddError(rblerrors.ErrorTypeStructural,
			fmt.Sprintf("play %q has %d duplicate tag(s)", play.Name, dupes), play.Location)
	}

	if len(play.Tasks) == 0 {
		el.AddError(rblerrors.ErrorTypeStructural,
			fmt.Sprintf("play %q has no tasks", play.Name), play.Location)
	}

	seenTasks := make(map[string]bool)
	for _, task := range play.Tasks {
		v.validateTask(rb, task, seenTasks, el)
	}
}

func (v *Validator) validateTask(rb *ast.Runbook, task *ast.Task, seen map[string]bool, el *rblerrors.ErrorList) {
	if task.Name == "" {
		el.AddError(rblerrors.ErrorTypeStructural,
			"task is missing a name", task.Location)
	} else if seen[task.Name] {
		el.AddError(rblerrors.ErrorTypeStructural,
			fmt.Sprintf("duplicate task name %q", task.Name), task.Location)
	}
	seen[task.Name] = true

	if task.Action == "" {
		el.AddErrorWithSuggestion(rblerrors.ErrorTypeStructural,
			fmt.Sprintf("task %q has no action", task.Name), task.Location,
			"add an 'action' field naming the module to run")
	}

	for _, name := range templateRefs(task) {
		if !rb.HasVar(name) {
			el.AddErrorWithSuggestion(rblerrors.ErrorTypeSemantic,
				fmt.Sprintf("task %q references undefined variable %q", task.Name, name), task.Location,
				"define it under the top-level 'vars' mapping")
		}
	}
}

// templateRe matches a {{ name }} variable reference.
var templateRe = regexp.MustCompile(`\{\{\s*([A-Za-z_]\w*)\s*\}\}`)

// templateRefs returns the distinct variable names referenced by the
// task's action and string arguments.
func templateRefs(task *ast.Task) []string {
	var refs []string
	collect := func(s string) {
		for _, m := range templateRe.FindAllStringSubmatch(s, -1) {
			refs = append(refs, m[1])
		}
	}

	collect(task.Action)
	for _, val := range task.Args {
		if s, ok := val.(string); ok {
			collect(s)
		}
	}
	return helpers.Dedupe(refs)
}
