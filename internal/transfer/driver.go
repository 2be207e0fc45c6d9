package transfer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/jssumme1/rorteazy/internal/manifest"
	"github.com/jssumme1/rorteazy/internal/resolver"
	"github.com/jssumme1/rorteazy/internal/utils"
)

// Engine performs one blocking transfer. Implementations must overwrite the
// destination when resume is false and continue from its current length when
// resume is true.
type Engine interface {
	Name() string
	Fetch(ctx context.Context, url, dest string, resume bool) error
}

// Driver realizes a manifest against a resolved destination: it creates the
// folder, emits MANIFEST.HTML, then runs one transfer per entry in manifest
// order. The first failing transfer aborts the whole run; a rerun in resume
// mode picks up where it stopped.
type Driver struct {
	Session resolver.Session
	Engine  Engine
	Torrent Engine // optional; used for magnet/.torrent entries
	Log     *logrus.Logger
}

func (d *Driver) Run(ctx context.Context, entries []manifest.Entry) error {
	log := d.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	if err := os.MkdirAll(d.Session.Folder, 0755); err != nil {
		return fmt.Errorf("create download folder: %w", err)
	}

	title := filepath.Base(d.Session.Folder)
	if err := manifest.WriteFile(d.Session.Folder, title, entries); err != nil {
		return fmt.Errorf("write %s: %w", manifest.FileName, err)
	}

	for _, entry := range entries {
		dest := filepath.Join(d.Session.Folder, filepath.FromSlash(entry.File))
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return fmt.Errorf("create directories for %s: %w", entry.File, err)
		}

		engine := d.Engine
		if d.Torrent != nil && utils.IsTorrentLike(entry.URL) {
			engine = d.Torrent
		}

		log.Infof("Downloading %s to %s", entry.URI, dest)
		if err := engine.Fetch(ctx, entry.URL, dest, d.Session.Resume); err != nil {
			return fmt.Errorf("download %s: %w", entry.URI, err)
		}
	}

	return nil
}
