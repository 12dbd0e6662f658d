package loop

import "fmt"

// ProgrammerError reports a violated invariant. It is raised with panic:
// continuing would leave the model inconsistent.
type ProgrammerError struct {
	Op     string
	Phase  Phase
	Reason string
}

func (e *ProgrammerError) Error() string {
	return fmt.Sprintf("%s in %s phase: %s", e.Op, e.Phase, e.Reason)
}

func violation(op string, phase Phase, reason string) {
	panic(&ProgrammerError{Op: op, Phase: phase, Reason: reason})
}
