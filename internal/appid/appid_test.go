package appid

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeriveKnownVectors(t *testing.T) {
	// abs(int32(crc32("Chrome"))) == 25525798, crc32 being 0xFE7B325A.
	stable, scoped := Derive("Chrome", "", 0)
	require.Equal(t, "25525798", stable)
	require.Equal(t, "1843159446", scoped)

	_, scoped1 := Derive("Chrome", "", 1)
	require.Equal(t, "450580740", scoped1)
}

func TestDeriveEmptyName(t *testing.T) {
	stable, scoped := Derive("", "", 0)
	require.Equal(t, "0", stable)
	require.Equal(t, "186917087", scoped)
}

func TestDeriveDeterministic(t *testing.T) {
	s1, i1 := Derive("Steam", "", 3)
	s2, i2 := Derive("Steam", "", 3)
	require.Equal(t, s1, s2)
	require.Equal(t, i1, i2)
}

func TestStableIDInvariantToIndex(t *testing.T) {
	s0, i0 := Derive("Steam", "", 0)
	s7, i7 := Derive("Steam", "", 7)
	require.Equal(t, s0, s7)
	require.NotEqual(t, i0, i7)
}

func TestDeriveWithImageContent(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "chrome.png")
	require.NoError(t, os.WriteFile(img, []byte("fake image bytes"), 0644))

	stable, scoped := Derive("Chrome", img, 0)
	require.Equal(t, "1624387880", stable)
	require.Equal(t, "1056004630", scoped)
}

func TestImageIdentityFollowsContentNotPath(t *testing.T) {
	dir := t.TempDir()
	content := []byte("fake image bytes")

	a := filepath.Join(dir, "a.png")
	b := filepath.Join(dir, "moved", "b.png")
	require.NoError(t, os.WriteFile(a, content, 0644))
	require.NoError(t, os.MkdirAll(filepath.Dir(b), 0755))
	require.NoError(t, os.WriteFile(b, content, 0644))

	stableA, _ := Derive("Chrome", a, 0)
	stableB, _ := Derive("Chrome", b, 0)
	require.Equal(t, stableA, stableB)

	require.NoError(t, os.WriteFile(a, []byte("other image bytes"), 0644))
	changed, _ := Derive("Chrome", a, 0)
	require.Equal(t, "14167485", changed)
	require.NotEqual(t, stableA, changed)
}

func TestDeriveMissingImageFallsBackToNameOnly(t *testing.T) {
	withMissing, _ := Derive("Chrome", filepath.Join(t.TempDir(), "nope.png"), 0)
	nameOnly, _ := Derive("Chrome", "", 0)
	require.Equal(t, nameOnly, withMissing)
}

func TestDeriveUnreadableImageFallsBackToPath(t *testing.T) {
	// A directory passes the existence check but fails the content read, so
	// the raw path string is hashed instead.
	dir := t.TempDir()

	first, _ := Derive("Chrome", dir, 0)
	second, _ := Derive("Chrome", dir, 0)
	require.Equal(t, first, second)

	nameOnly, _ := Derive("Chrome", "", 0)
	require.NotEqual(t, nameOnly, first)
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"Foo/Bar:Baz":     "Foo_Bar_Baz",
		`a<b>c:d"e/f\g|h`: "a_b_c_d_e_f_g_h",
		"what?why*":       "what_why_",
		"trailing... ":    "trailing",
		"Chrome":          "Chrome",
		"":                "",
	}
	for input, want := range cases {
		require.Equal(t, want, SanitizeFilename(input), "input %q", input)
	}
}

func TestSanitizeFilenameIdempotent(t *testing.T) {
	for _, s := range []string{"Foo/Bar:Baz", "dots...", "plain", `\\server\share`} {
		once := SanitizeFilename(s)
		require.Equal(t, once, SanitizeFilename(once))
	}
}
