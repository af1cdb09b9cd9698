package extraction

// Attempt produces a candidate for one field. ok is false when the attempt
// found nothing usable and the next attempt should run.
type Attempt[T any] func() (v T, ok bool)

// FirstMatch runs attempts in order and returns the first successful
// candidate, or the zero value when every attempt comes up empty.
func FirstMatch[T any](attempts ...Attempt[T]) T {
	for _, attempt := range attempts {
		if v, ok := attempt(); ok {
			return v
		}
	}
	var zero T
	return zero
}
