// Package appid derives the numeric identifiers Moonlight uses to recognize
// previously enumerated apps.
package appid

import (
	"crypto/sha256"
	"encoding/hex"
	"hash/crc32"
	"os"
	"strconv"
	"strings"
)

// DefaultImagePath is the sentinel Sunshine uses for apps without custom
// artwork. Apps resolving to it contribute only their name to the id hash.
const DefaultImagePath = "default_image.png"

// Derive computes the two identifier variants for an app. The stable id
// depends on the app name and, when imagePath names an existing file, the
// SHA-256 of its content; the scoped id additionally folds in the app's
// position in the source list so duplicate entries still get distinct ids.
func Derive(name, imagePath string, index int) (stable, scoped string) {
	input := name

	if path := resolveImagePath(imagePath); path != DefaultImagePath {
		if digest, err := hashFile(path); err == nil {
			input += digest
		} else {
			// The file vanished or became unreadable after the existence
			// check; fall back to hashing the path itself.
			input += path
		}
	}

	return checksumID(input), checksumID(input + strconv.Itoa(index))
}

// resolveImagePath validates the configured artwork path, falling back to
// the sentinel default when it is unset or does not exist on disk.
func resolveImagePath(imagePath string) string {
	if imagePath == "" {
		return DefaultImagePath
	}
	if _, err := os.Stat(imagePath); err != nil {
		return DefaultImagePath
	}
	return imagePath
}

// hashFile returns the hex SHA-256 of the file's content. Hashing content
// rather than the path keeps an app's identity stable across image renames.
func hashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// checksumID renders the CRC-32 (IEEE polynomial) of s reinterpreted as a
// two's-complement signed 32-bit value, folded to its magnitude. Moonlight
// stores app ids in that range, so the fold must match bit for bit.
func checksumID(s string) string {
	v := int64(int32(crc32.ChecksumIEEE([]byte(s))))
	if v < 0 {
		v = -v
	}
	return strconv.FormatInt(v, 10)
}

var filenameReplacer = strings.NewReplacer(
	"<", "_",
	">", "_",
	":", "_",
	`"`, "_",
	"/", "_",
	`\`, "_",
	"|", "_",
	"?", "_",
	"*", "_",
)

// SanitizeFilename replaces characters Windows refuses in filenames with
// underscores and strips trailing dots and spaces.
func SanitizeFilename(name string) string {
	return strings.TrimRight(filenameReplacer.Replace(name), ". ")
}
