package link

import (
	"fmt"
	"sync/atomic"

	"github.com/dustin/go-humanize"
)

// Stats counts link activity. All fields are safe for concurrent use.
type Stats struct {
	BytesIn        atomic.Uint64
	BytesOut       atomic.Uint64
	FramesIn       atomic.Uint64
	FramesOut      atomic.Uint64
	Resyncs        atomic.Uint64
	Discarded      atomic.Uint64
	Oversize       atomic.Uint64
	Abandoned      atomic.Uint64
	Malformed      atomic.Uint64
	ChecksumErrors atomic.Uint64
}

// String implements fmt.Stringer.
func (s *Stats) String() string {
	return fmt.Sprintf("rx %s in %s frames, tx %s in %s frames, "+
		"%s resyncs (%s bytes discarded), %s oversize, %s abandoned, %s malformed, %s bad checksums",
		humanize.Bytes(s.BytesIn.Load()), humanize.Comma(int64(s.FramesIn.Load())),
		humanize.Bytes(s.BytesOut.Load()), humanize.Comma(int64(s.FramesOut.Load())),
		humanize.Comma(int64(s.Resyncs.Load())), humanize.Comma(int64(s.Discarded.Load())),
		humanize.Comma(int64(s.Oversize.Load())), humanize.Comma(int64(s.Abandoned.Load())),
		humanize.Comma(int64(s.Malformed.Load())), humanize.Comma(int64(s.ChecksumErrors.Load())))
}
