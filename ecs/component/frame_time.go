package component

import "time"

// FrameTime is the singleton clock advanced once per update.
type FrameTime struct {
	Delta   time.Duration
	Elapsed time.Duration
	Frame   uint64
}

var FrameTimeComponent = NewComponent[FrameTime]()
