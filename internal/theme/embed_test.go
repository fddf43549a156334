package theme

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEmbeddedTheme(t *testing.T) {
	for _, name := range BundledThemes {
		t.Run(name, func(t *testing.T) {
			data, found := GetEmbeddedTheme(name)
			require.True(t, found)
			assert.NotEmpty(t, data)

			p, err := ParsePalette(data)
			require.NoError(t, err)
			assert.Equal(t, name, p.Name)
		})
	}

	_, found := GetEmbeddedTheme("nonexistent")
	assert.False(t, found)
}

func TestListEmbeddedThemes(t *testing.T) {
	assert.Equal(t, BundledThemes, ListEmbeddedThemes())
	assert.True(t, IsEmbeddedTheme("catppuccin"))
	assert.False(t, IsEmbeddedTheme("nonexistent"))
}

func TestDarkThemeShadowHasAlpha(t *testing.T) {
	data, _ := GetEmbeddedTheme("dark")
	p, err := ParsePalette(data)
	require.NoError(t, err)
	assert.Equal(t, uint8(0xcc), p.Shadow.A)
}

func TestResolveName(t *testing.T) {
	tests := []struct {
		name, scheme string
		systemDark   bool
		want         string
	}{
		{"", SchemeLight, true, "default"},
		{"", SchemeDark, false, "dark"},
		{"default", SchemeSystem, true, "dark"},
		{"default", SchemeSystem, false, "default"},
		{"catppuccin", SchemeDark, true, "catppuccin"},
		{"", "bogus", true, "default"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolveName(tt.name, tt.scheme, tt.systemDark), "%q/%s/%v", tt.name, tt.scheme, tt.systemDark)
	}
}

func TestLoader_Resolution(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dark.yaml"), []byte("surface: \"#010203\"\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("surface: nope\n"), 0644))

	l := NewLoader(dir, nil)

	var notified []string
	l.SetChangeCallback(func(p *Palette) { notified = append(notified, p.Name) })

	p := l.LoadTheme("dark")
	assert.Equal(t, MustParseColor("#010203"), p.Surface, "user theme wins over bundled")
	assert.Equal(t, "dark", l.CurrentTheme())

	p = l.LoadTheme("catppuccin")
	assert.Equal(t, "catppuccin", p.Name)

	p = l.LoadTheme("missing")
	assert.Equal(t, "default", p.Name)
	assert.Equal(t, "default", l.CurrentTheme())

	// A broken user file with no bundled fallback resolves to default.
	p = l.LoadTheme("broken")
	assert.Equal(t, "default", p.Name)

	assert.Equal(t, []string{"dark", "catppuccin", "default", "default"}, notified)
}

func TestLoader_PaletteLoadsDefaultLazily(t *testing.T) {
	l := NewLoader("", nil)
	assert.Equal(t, "default", l.Palette().Name)
	assert.Equal(t, "default", l.CurrentTheme())
}

func TestLoader_HotReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ocean.yaml")
	require.NoError(t, os.WriteFile(path, []byte("surface: \"#000001\"\n"), 0644))
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(path, past, past))

	l := NewLoader(dir, nil)
	l.LoadTheme("ocean")

	var mu sync.Mutex
	var latest *Palette
	l.SetChangeCallback(func(p *Palette) {
		mu.Lock()
		latest = p
		mu.Unlock()
	})

	require.NoError(t, l.StartHotReload())
	defer l.StopHotReload()

	require.NoError(t, os.WriteFile(path, []byte("surface: \"#000002\"\n"), 0644))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return latest != nil && latest.Surface == MustParseColor("#000002")
	}, 5*time.Second, 20*time.Millisecond)
}

func TestLoader_HotReloadSkipsBundled(t *testing.T) {
	l := NewLoader("", nil)
	l.LoadTheme("dark")
	require.NoError(t, l.StartHotReload())
	l.StopHotReload()
}
