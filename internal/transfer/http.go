package transfer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/time/rate"
)

// HTTPEngine downloads files over plain HTTP without an external client.
// Resume mode issues a Range request starting at the current length of the
// partial file; otherwise the destination is truncated and rewritten.
type HTTPEngine struct {
	client  *http.Client
	limiter *rate.Limiter
	quiet   bool
}

func NewHTTPEngine(opts Options) *HTTPEngine {
	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return fmt.Errorf("stopped after 10 redirects")
			}
			// Trusted locations only: never follow a downgrade to
			// plain http from an https origin.
			if via[0].URL.Scheme == "https" && req.URL.Scheme != "https" {
				return fmt.Errorf("refusing redirect to untrusted location %s", req.URL)
			}
			return nil
		},
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), int(opts.RateLimit))
	}

	return &HTTPEngine{
		client:  client,
		limiter: limiter,
		quiet:   opts.Quiet,
	}
}

func (e *HTTPEngine) Name() string { return "native" }

func (e *HTTPEngine) Fetch(ctx context.Context, url, dest string, resume bool) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}

	var offset int64
	if resume {
		if info, err := os.Stat(dest); err == nil {
			offset = info.Size()
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	if offset > 0 {
		req.Header.Set("Range", fmt.Sprintf("bytes=%d-", offset))
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if offset > 0 {
		switch resp.StatusCode {
		case http.StatusRequestedRangeNotSatisfiable:
			// Nothing left to download.
			return nil
		case http.StatusOK:
			// Server ignored the range; restart from zero.
			offset = 0
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected HTTP status: %d %s", resp.StatusCode, resp.Status)
	}

	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if offset > 0 {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	file, err := os.OpenFile(dest, flags, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	var reader io.Reader = resp.Body
	if e.limiter != nil {
		reader = &throttledReader{ctx: ctx, r: resp.Body, limiter: e.limiter}
	}

	var out io.Writer = file
	if !e.quiet {
		total := int64(-1)
		if resp.ContentLength > 0 {
			total = offset + resp.ContentLength
		}
		bar := progressbar.DefaultBytes(total, filepath.Base(dest))
		bar.Add64(offset)
		out = io.MultiWriter(file, bar)
		defer fmt.Println()
	}

	if _, err := io.Copy(out, reader); err != nil {
		return fmt.Errorf("download interrupted: %w", err)
	}
	return file.Sync()
}

// throttledReader caps read throughput with a token bucket.
type throttledReader struct {
	ctx     context.Context
	r       io.Reader
	limiter *rate.Limiter
}

func (t *throttledReader) Read(p []byte) (int, error) {
	if burst := t.limiter.Burst(); len(p) > burst {
		p = p[:burst]
	}
	n, err := t.r.Read(p)
	if n > 0 {
		if werr := t.limiter.WaitN(t.ctx, n); werr != nil {
			return n, werr
		}
	}
	return n, err
}
