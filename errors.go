package dropbubble

import "github.com/pkg/errors"

var (
	// ErrDragSizeRange is returned when a drag size outside [0, 1] is assigned.
	ErrDragSizeRange = errors.New("dropbubble: drag size must be within [0, 1]")

	// ErrNilElement is returned by Attach for a nil element.
	ErrNilElement = errors.New("dropbubble: element cannot be nil")

	// ErrNoSteps is returned by LoadTestScript for a script without steps.
	ErrNoSteps = errors.New("dropbubble: test script has no steps")
)
