package ast

// Runbook is the root of a parsed runbook document: metadata plus an
// ordered list of plays.
type Runbook struct {
	Name        string
	Version     string
	Description string
	Tags        []string
	Vars        map[string]interface{}
	Plays       []*Play

	Location Location
}

// Play groups an ordered list of tasks with optional scheduling and
// rollout controls.
type Play struct {
	Name string

	// Schedule is an optional cron expression controlling when the play
	// runs. Validated, never interpreted, by this module.
	Schedule string

	// Serial limits how many targets are processed at once. Either a
	// plain integer ("5") or a percentage ("30%").
	Serial string

	Tags  []string
	Tasks []*Task

	Location Location
}

// Task is a single named action within a play.
type Task struct {
	Name   string
	Action string
	Args   map[string]interface{}
	Tags   []string

	Location Location
}

// HasVar reports whether the runbook defines the named variable.
func (r *Runbook) HasVar(name string) bool {
	_, ok := r.Vars[name]
	return ok
}

// TaskCount returns the total number of tasks across all plays.
func (r *Runbook) TaskCount() int {
	n := 0
	for _, p := range r.Plays {
		n += len(p.Tasks)
	}
	return n
}
