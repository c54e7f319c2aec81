package trace

// Cloner is implemented by step types that carry references to mutable state.
type Cloner[S any] interface {
	Clone() S
}

// Recorder is an ordered, append-only sequence of steps of one algorithm run.
// The zero value is ready to use. A Recorder is owned by a single run and is not
// safe for concurrent use.
type Recorder[S any] struct {
	steps []S
}

// NewRecorder returns a recorder with room for capacity steps
func NewRecorder[S any](capacity int) *Recorder[S] {
	return &Recorder[S]{steps: make([]S, 0, capacity)}
}

// Record appends s, deep-copying it first when S implements Cloner.
func (r *Recorder[S]) Record(s S) {
	if c, ok := any(s).(Cloner[S]); ok {
		s = c.Clone()
	}
	r.steps = append(r.steps, s)
}

// Len returns the number of recorded steps
func (r *Recorder[S]) Len() int {
	return len(r.steps)
}

// Steps returns a copy of the recorded sequence. The copy is never nil so it
// serializes as an empty JSON array rather than null.
func (r *Recorder[S]) Steps() []S {
	out := make([]S, len(r.steps))
	copy(out, r.steps)
	return out
}
