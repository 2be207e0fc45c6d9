package transfer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

// ErrCurlMissing reports that the external transfer client is not installed.
var ErrCurlMissing = errors.New("curl was not found in PATH; install curl or use --engine native")

// CurlEngine shells out to curl for every file, the way the MAST bundle
// scripts do. Redirects are followed with --location-trusted, HTTP errors
// fail the process instead of writing an error body, and resume mode maps
// to -C - (continue from the current length of the partial file).
type CurlEngine struct {
	Binary    string
	RateLimit int64
	Quiet     bool
}

func NewCurlEngine(opts Options) *CurlEngine {
	return &CurlEngine{
		Binary:    "curl",
		RateLimit: opts.RateLimit,
		Quiet:     opts.Quiet,
	}
}

func (e *CurlEngine) Name() string { return "curl" }

// Available checks for the curl binary without running it.
func (e *CurlEngine) Available() error {
	if _, err := exec.LookPath(e.Binary); err != nil {
		return ErrCurlMissing
	}
	return nil
}

func (e *CurlEngine) Fetch(ctx context.Context, url, dest string, resume bool) error {
	cmd := exec.CommandContext(ctx, e.Binary, e.arguments(url, dest, resume)...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("curl %s: %w", url, err)
	}
	return nil
}

func (e *CurlEngine) arguments(url, dest string, resume bool) []string {
	args := []string{"--globoff", "--location-trusted", "--fail", "--create-dirs"}
	if e.Quiet {
		args = append(args, "--silent", "--show-error")
	} else {
		args = append(args, "--progress-bar")
	}
	if e.RateLimit > 0 {
		args = append(args, "--limit-rate", strconv.FormatInt(e.RateLimit, 10))
	}
	if resume {
		args = append(args, "-C", "-")
	}
	return append(args, "-o", dest, url)
}
