// Package process manages helper subprocesses as whole process groups so a
// child and everything it spawns can be stopped, suspended or resumed
// together.
package process

import "errors"

// ErrUnsupported is returned when the platform cannot perform a group
// operation.
var ErrUnsupported = errors.New("process group operation not supported on this platform")
