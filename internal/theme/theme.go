package theme

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Color is an sRGB colour written as "#RGB", "#RRGGBB" or "#RRGGBBAA" in palette files.
type Color color.NRGBA

// ParseColor parses a hex colour string.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return Color{}, fmt.Errorf("invalid colour %q: must start with '#'", s)
	}

	alpha := uint8(0xff)
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid colour %q: bad alpha: %w", s, err)
		}
		alpha = uint8(a)
		s = s[:7]
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b, A: alpha}, nil
}

// MustParseColor is like ParseColor but panics on error. For literals only.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// NRGBA returns the colour as a color.NRGBA.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA(c)
}

// Hex formats the colour, omitting alpha when opaque.
func (c Color) Hex() string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*c = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (c Color) MarshalYAML() (any, error) {
	return c.Hex(), nil
}

// Mix blends a towards b by t (0..1) in CIE L*a*b* space, keeping a's alpha.
// Controls use it for pressed and selected states.
func Mix(a, b Color, t float64) Color {
	ca := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
	cb := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
	r, g, bl := ca.BlendLab(cb, t).Clamped().RGB255()
	return Color{R: r, G: g, B: bl, A: a.A}
}

// Swatch is a background/foreground pair with an optional leading glyph.
type Swatch struct {
	Background Color  `yaml:"background"`
	Foreground Color  `yaml:"foreground"`
	Glyph      string `yaml:"glyph,omitempty"`
}

// SeveritySwatches holds the toast swatch for each severity.
type SeveritySwatches struct {
	Info    Swatch `yaml:"info"`
	Success Swatch `yaml:"success"`
	Warning Swatch `yaml:"warning"`
	Error   Swatch `yaml:"error"`
}

// Palette is the full set of colours used by overlays and controls.
type Palette struct {
	Name      string           `yaml:"name"`
	Severity  SeveritySwatches `yaml:"severity"`
	Snackbar  Swatch           `yaml:"snackbar"`
	Action    Color            `yaml:"action"`
	Surface   Color            `yaml:"surface"`
	OnSurface Color            `yaml:"on_surface"`
	Primary   Color            `yaml:"primary"`
	OnPrimary Color            `yaml:"on_primary"`
	Shadow    Color            `yaml:"shadow"`
}

// Default returns a copy of the bundled default palette.
func Default() *Palette {
	data, _ := GetEmbeddedTheme(DefaultThemeName)
	p := &Palette{}
	if err := yaml.Unmarshal(data, p); err != nil {
		panic(fmt.Sprintf("bundled theme %q is invalid: %v", DefaultThemeName, err))
	}
	return p
}

// ParsePalette decodes a palette file. Keys missing from data keep the
// default palette's values.
func ParsePalette(data []byte) (*Palette, error) {
	p := Default()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("failed to parse palette: %w", err)
	}
	return p, nil
}

// Marshal encodes the palette as YAML.
func (p *Palette) Marshal() ([]byte, error) {
	return yaml.Marshal(p)
}

// Theme is a named palette together with where it came from.
type Theme struct {
	Name      string    // Theme name (without .yaml extension)
	Path      string    // Full path of a user theme (empty when bundled)
	Palette   *Palette  // Decoded palette
	ModTime   time.Time // Last modification time of Path
	IsBundled bool      // True when loaded from the embedded set
}

// NewTheme loads a user theme file.
func NewTheme(name, path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	palette, err := ParsePalette(data)
	if err != nil {
		return nil, fmt.Errorf("theme %s: %w", path, err)
	}
	if palette.Name == "" || palette.Name == DefaultThemeName {
		palette.Name = name
	}

	return &Theme{
		Name:    name,
		Path:    path,
		Palette: palette,
		ModTime: info.ModTime(),
	}, nil
}

// NewBundledTheme loads an embedded theme by name.
func NewBundledTheme(name string) (*Theme, error) {
	data, ok := GetEmbeddedTheme(name)
	if !ok {
		return nil, fmt.Errorf("bundled theme %q not found", name)
	}
	palette, err := ParsePalette(data)
	if err != nil {
		return nil, err
	}
	return &Theme{Name: name, Palette: palette, IsBundled: true}, nil
}

// Reload re-reads a user theme from disk.
// Returns true if the file was modified since the last load.
func (t *Theme) Reload() (bool, error) {
	if t.IsBundled {
		return false, nil
	}

	info, err := os.Stat(t.Path)
	if err != nil {
		return false, err
	}
	if !info.ModTime().After(t.ModTime) {
		return false, nil
	}

	data, err := os.ReadFile(t.Path)
	if err != nil {
		return false, err
	}
	palette, err := ParsePalette(data)
	if err != nil {
		return false, err
	}
	if palette.Name == "" || palette.Name == DefaultThemeName {
		palette.Name = t.Name
	}

	t.Palette = palette
	t.ModTime = info.ModTime()
	return true, nil
}

// ThemeInfo provides basic theme information for listing.
type ThemeInfo struct {
	Name      string
	Path      string
	IsDefault bool
	IsBundled bool
}

// ListAvailableThemes lists bundled themes followed by user themes in dir.
// A user theme with a bundled name is reported once, as the user override.
func ListAvailableThemes(dir string) ([]ThemeInfo, error) {
	index := make(map[string]int)
	var themes []ThemeInfo

	for _, name := range ListEmbeddedThemes() {
		index[name] = len(themes)
		themes = append(themes, ThemeInfo{
			Name:      name,
			IsDefault: name == DefaultThemeName,
			IsBundled: true,
		})
	}

	if dir == "" {
		return themes, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return themes, nil
		}
		return themes, err
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != themeExt {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), themeExt)
		info := ThemeInfo{
			Name:      name,
			Path:      filepath.Join(dir, entry.Name()),
			IsDefault: name == DefaultThemeName,
		}
		if i, ok := index[name]; ok {
			themes[i] = info
			continue
		}
		index[name] = len(themes)
		themes = append(themes, info)
	}

	return themes, nil
}
