// Package sunshine reads the documents Sunshine keeps on disk: the exported
// app list and the host state file.
package sunshine

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// App is one entry of the exported app list. Fields beyond these exist in
// Sunshine's schema but do not participate in identifier derivation. Name is
// a pointer so an absent key (which gets a generated default downstream) can
// be told apart from an explicit empty string (a valid, hashable name).
type App struct {
	Name      *string `json:"name"`
	ImagePath string  `json:"image-path"`
}

type appsDocument struct {
	Apps []App `json:"apps"`
}

type stateDocument struct {
	Root struct {
		UniqueID string `json:"uniqueid"`
	} `json:"root"`
}

// LoadApps loads the app list from an apps.json document.
func LoadApps(path string) ([]App, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read app list %s: %w", path, err)
	}

	var doc appsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse app list %s: %w", path, err)
	}

	return doc.Apps, nil
}

// LoadHostUUID extracts the host's uniqueid from a sunshine_state.json
// document. The value is returned verbatim; a value that does not parse as
// a UUID only produces a warning, since Moonlight treats it as opaque.
func LoadHostUUID(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read state file %s: %w", path, err)
	}

	var doc stateDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return "", fmt.Errorf("failed to parse state file %s: %w", path, err)
	}

	if doc.Root.UniqueID == "" {
		return "", fmt.Errorf("state file %s has no uniqueid", path)
	}

	if _, err := uuid.Parse(doc.Root.UniqueID); err != nil {
		log.Warn().
			Str("uniqueid", doc.Root.UniqueID).
			Msg("host uniqueid is not a well-formed UUID, passing through anyway")
	}

	return doc.Root.UniqueID, nil
}
