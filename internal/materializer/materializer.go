// Package materializer writes the identifier files Moonlight scans to
// recognize apps, plus the host UUID passthrough file.
package materializer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/moonlightgen/internal/appid"
	"github.com/moonlightgen/internal/sunshine"
)

// Options fixes the layout of one output directory.
type Options struct {
	OutputDir    string
	IDFileSuffix string
	UUIDFileName string
	UseIndex     bool
	ClearFirst   bool
}

// Materializer turns an app list into identifier files. It is synchronous
// and best-effort: per-app failures are logged and skipped, and writes are
// not atomic.
type Materializer struct {
	opts Options
}

// New creates a materializer for the given output layout.
func New(opts Options) *Materializer {
	return &Materializer{opts: opts}
}

// Run writes one identifier file per app and, when hostUUID is non-empty,
// the UUID passthrough file. It returns the number of identifier files
// written. Only failure to create the output directory is fatal.
func (m *Materializer) Run(apps []sunshine.App, hostUUID string) (int, error) {
	if err := os.MkdirAll(m.opts.OutputDir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create output directory %s: %w", m.opts.OutputDir, err)
	}

	if m.opts.ClearFirst {
		m.clearStale()
	}

	if hostUUID != "" {
		m.writeHostUUID(hostUUID)
	} else {
		log.Warn().Msg("no host UUID available, skipping UUID file")
	}

	written := 0
	seen := make(map[string]string, len(apps))

	for index, app := range apps {
		// Only an absent name gets the generated default; an explicit empty
		// string is a valid name and derives the fixed empty-input id.
		name := fmt.Sprintf("App_%d", index)
		if app.Name != nil {
			name = *app.Name
		}

		stableID, scopedID := appid.Derive(name, app.ImagePath, index)
		id := stableID
		if m.opts.UseIndex {
			id = scopedID
		}

		// Collisions are not resolved, only surfaced; both files are
		// written under their own names.
		if prev, ok := seen[id]; ok && prev != name {
			log.Warn().
				Str("app", name).
				Str("collides_with", prev).
				Str("id", id).
				Msg("identifier collision")
		}
		seen[id] = name

		path := filepath.Join(m.opts.OutputDir, appid.SanitizeFilename(name)+m.opts.IDFileSuffix)
		if err := os.WriteFile(path, []byte(id), 0644); err != nil {
			log.Error().Err(err).Str("app", name).Msg("failed to write identifier file")
			continue
		}

		log.Info().Str("file", path).Str("id", id).Msg("created identifier file")
		written++
	}

	return written, nil
}

// clearStale removes prior outputs: identifier files by suffix and the UUID
// file by exact name. Unrelated entries are left alone.
func (m *Materializer) clearStale() {
	entries, err := os.ReadDir(m.opts.OutputDir)
	if err != nil {
		log.Warn().Err(err).Str("dir", m.opts.OutputDir).Msg("failed to scan output directory")
		return
	}

	removed := 0
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, m.opts.IDFileSuffix) && name != m.opts.UUIDFileName {
			continue
		}
		if err := os.Remove(filepath.Join(m.opts.OutputDir, name)); err != nil {
			log.Warn().Err(err).Str("file", name).Msg("failed to remove stale output file")
			continue
		}
		removed++
	}

	if removed > 0 {
		log.Info().Int("count", removed).Msg("cleared stale output files")
	}
}

// writeHostUUID passes the host UUID through verbatim. Failure is a warning,
// not an error: identifier files are still worth writing without it.
func (m *Materializer) writeHostUUID(hostUUID string) {
	path := filepath.Join(m.opts.OutputDir, m.opts.UUIDFileName)
	if err := os.WriteFile(path, []byte(hostUUID), 0644); err != nil {
		log.Warn().Err(err).Str("file", path).Msg("failed to write UUID file")
		return
	}
	log.Info().Str("file", path).Msg("wrote host UUID file")
}
