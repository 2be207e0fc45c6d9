package transfer

// Options tune every engine the same way; each engine ignores what it
// cannot honor.
type Options struct {
	RateLimit int64 // bytes per second, 0 means unlimited
	Quiet     bool  // suppress per-file progress rendering
}
