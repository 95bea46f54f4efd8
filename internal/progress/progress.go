// Package progress defines the progress reporting types shared between the
// calculation engines and the presentation layers. Engines publish normalized
// progress values; consumers decide how to render them (spinner, TUI, or
// nothing at all).
package progress

// ProgressUpdate carries a single progress notification from an engine.
type ProgressUpdate struct {
	// CalculatorIndex identifies which engine sent the update when several
	// run concurrently.
	CalculatorIndex int
	// Value is the normalized progress, from 0.0 to 1.0.
	Value float64
}

// ProgressCallback receives normalized progress values (0.0 to 1.0) during a
// calculation. Engines call it at coarse intervals; it must be cheap and must
// not block.
type ProgressCallback func(progress float64)

// NoOpCallback is a ProgressCallback that discards all updates. Engines may
// assume the callback is never nil; callers that do not care pass this.
func NoOpCallback(float64) {}

// ChannelCallback returns a ProgressCallback that forwards updates for the
// engine at index to ch. Sends are non-blocking: if the channel buffer is
// full the update is dropped rather than stalling the calculation.
func ChannelCallback(ch chan<- ProgressUpdate, index int) ProgressCallback {
	return func(value float64) {
		select {
		case ch <- ProgressUpdate{CalculatorIndex: index, Value: value}:
		default:
		}
	}
}
