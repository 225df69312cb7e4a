package observe

import (
	"fmt"

	"github.com/synaptiq/neuroloop/internal/table"
)

// Recorder samples a fixed list of attributes from one target entity and
// appends the flattened result to its own ColumnBuffer, one row per Record
// call. The Recorder does not own the target and never mutates it; the
// buffer is exclusively owned and is the only state Record touches.
//
// Calling Record exactly once per simulation tick keeps row N meaning
// "tick N". The Recorder does not enforce that cadence; it is the driver's
// responsibility.
type Recorder struct {
	target     Observable
	targetName string // snapshotted at construction; later renames don't affect logs
	attrs      []string
	buf        *ColumnBuffer
}

// NewRecorder binds a target and an ordered attribute list. The attribute
// list is copied, and the target's display name is captured now rather than
// read back on each use.
func NewRecorder(target Observable, attrs []string) *Recorder {
	a := make([]string, len(attrs))
	copy(a, attrs)
	return &Recorder{
		target:     target,
		targetName: target.Name(),
		attrs:      a,
		buf:        NewColumnBuffer(),
	}
}

// TargetName returns the display name captured when the Recorder was built.
func (r *Recorder) TargetName() string { return r.targetName }

// Attrs returns the configured attribute list.
func (r *Recorder) Attrs() []string {
	out := make([]string, len(r.attrs))
	copy(out, r.attrs)
	return out
}

// Record observes every configured attribute in order, concatenates the
// results into one row, and appends it to the buffer. If any attribute is
// unrecognized the whole tick is aborted: the error propagates and no
// partial row is committed.
func (r *Recorder) Record() error {
	var row Row
	for _, attr := range r.attrs {
		obs, err := r.target.Observe(attr)
		if err != nil {
			return fmt.Errorf("record %q: %w", r.targetName, err)
		}
		row = append(row, obs...)
	}
	r.buf.Append(row)
	return nil
}

// Len returns the number of rows recorded so far.
func (r *Recorder) Len() int { return r.buf.Len() }

// Table materializes the buffer into a snapshot, one row per Record call.
func (r *Recorder) Table() *table.Table { return r.buf.Table() }
