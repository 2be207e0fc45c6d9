package transfer

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jssumme1/rorteazy/internal/manifest"
	"github.com/jssumme1/rorteazy/internal/utils"
)

// ProbeResult describes one remote product without downloading it.
type ProbeResult struct {
	URI       string `json:"uri"`
	File      string `json:"file"`
	Size      int64  `json:"size"`
	SizeHuman string `json:"size_human"`
	Resumable bool   `json:"resumable"`
	Error     string `json:"error,omitempty"`
}

// Probe issues a HEAD request per entry and reports size and range support.
// Servers that reject HEAD get a one-byte range GET instead. Probe failures
// are recorded per entry rather than aborting; only the actual transfer run
// is fail-fast.
func Probe(ctx context.Context, entries []manifest.Entry) []ProbeResult {
	client := &http.Client{Timeout: 30 * time.Second}

	results := make([]ProbeResult, 0, len(entries))
	for _, entry := range entries {
		result := ProbeResult{URI: entry.URI, File: entry.File}

		size, resumable, err := probeOne(ctx, client, entry.URL)
		if err != nil {
			result.Error = err.Error()
		} else {
			result.Size = size
			result.SizeHuman = utils.HumanBytes(size)
			result.Resumable = resumable
		}
		results = append(results, result)
	}
	return results
}

func probeOne(ctx context.Context, client *http.Client, url string) (size int64, resumable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return 0, false, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, false, err
	}
	resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp.ContentLength, resp.Header.Get("Accept-Ranges") == "bytes", nil
	}

	// HEAD not supported; ask for the first byte.
	req, err = http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, false, err
	}
	req.Header.Set("Range", "bytes=0-0")

	resp, err = client.Do(req)
	if err != nil {
		return 0, false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusPartialContent {
		if total, ok := parseContentRangeTotal(resp.Header.Get("Content-Range")); ok {
			return total, true, nil
		}
		return 0, true, nil
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp.ContentLength, false, nil
	}
	return 0, false, fmt.Errorf("unexpected HTTP status: %d %s", resp.StatusCode, resp.Status)
}

// parseContentRangeTotal extracts the total from "bytes 0-0/1234567".
func parseContentRangeTotal(header string) (int64, bool) {
	for i := len(header) - 1; i >= 0; i-- {
		if header[i] == '/' {
			var total int64
			for _, c := range header[i+1:] {
				if c < '0' || c > '9' {
					return 0, false
				}
				total = total*10 + int64(c-'0')
			}
			return total, total > 0
		}
	}
	return 0, false
}
