package service

// Outcome records a best-effort side step (screenshot upload, AI call) that
// must never abort the main write. Attempted is false when the step was
// skipped because its input was absent.
type Outcome struct {
	Attempted bool
	Err       error
}

func (o Outcome) Succeeded() bool {
	return o.Attempted && o.Err == nil
}

func (o Outcome) Degraded() bool {
	return o.Attempted && o.Err != nil
}

func attempted(err error) Outcome {
	return Outcome{Attempted: true, Err: err}
}
