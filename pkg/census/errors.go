package census

import "fmt"

// ErrCentroid indicates the label point of an area could not be computed
type ErrCentroid struct {
	Code   string
	Reason string
}

func (e *ErrCentroid) Error() string {
	return fmt.Sprintf("centroid of area %q: %s", e.Code, e.Reason)
}
