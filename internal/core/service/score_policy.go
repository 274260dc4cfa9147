package service

// ScorePolicy bounds the amount a single increment may add. A nil bound is
// open, so the zero value accepts any integer, negative amounts included.
type ScorePolicy struct {
	Min *int64
	Max *int64
}

func (p ScorePolicy) Allows(amount int64) bool {
	if p.Min != nil && amount < *p.Min {
		return false
	}
	if p.Max != nil && amount > *p.Max {
		return false
	}
	return true
}
