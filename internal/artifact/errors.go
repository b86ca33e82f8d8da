package artifact

import "fmt"

// InvalidNameError reports a feature name that sanitizes to nothing
// (input was purely punctuation, emoji, or whitespace).
type InvalidNameError struct {
	Input string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("feature name %q contains no usable characters", e.Input)
}

// InvalidNumberError reports an explicit number that can never name an
// artifact (zero is the automatic-allocation sentinel, negatives have no
// on-disk form).
type InvalidNumberError struct {
	Number int
}

func (e *InvalidNumberError) Error() string {
	return fmt.Sprintf("explicit number must be positive, got %d", e.Number)
}

// CollisionError reports an explicit number that is already taken.
// Explicit intent is never silently overridden — the caller decides
// whether to retry with a different number.
type CollisionError struct {
	Number int
	Path   string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("number %d is already taken by %s", e.Number, e.Path)
}

// ContentionError reports that automatic allocation lost the reservation
// race on every attempt. Indicates pathological concurrent load; the
// whole command can simply be retried.
type ContentionError struct {
	Root     string
	Prefix   string
	Attempts int
}

func (e *ContentionError) Error() string {
	return fmt.Sprintf("could not reserve a number under %s (prefix %q) after %d attempts",
		e.Root, e.Prefix, e.Attempts)
}
