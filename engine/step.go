package engine

type Status int

const (
	Running Status = iota
	Finished
)

func (s Status) String() string {
	if s == Finished {
		return "finished"
	}
	return "running"
}

// Step is one tick of a long-running effect: a timed move, a nested script,
// a behavior. It is called once per tick until it reports Finished.
type Step interface {
	Step(sc *Scene) Status
}

type StepFunc func(sc *Scene) Status

func (f StepFunc) Step(sc *Scene) Status {
	return f(sc)
}

// Gate holds a runner's cursor until it reports true.
type Gate func(sc *Scene) bool

// Outcome is what executing one action means for the cursor.
type Outcome struct {
	gate Gate
	done bool
}

// Continue lets the cursor move straight on to the next action.
func Continue() Outcome {
	return Outcome{}
}

// Suspend holds the cursor at the current action until gate opens. The gate
// is checked right away, so an open gate costs nothing.
func Suspend(gate Gate) Outcome {
	return Outcome{gate: gate}
}

// Done ends the cursor. Only an exhausted action list produces it.
func Done() Outcome {
	return Outcome{done: true}
}

func (o Outcome) IsDone() bool {
	return o.done
}
