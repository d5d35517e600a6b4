package subtitle

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// ErrNoGlyphSource is returned when no glyph source could be resolved for a
// script, including the Latin fallback. Callers degrade to the engine's
// built-in drawtext rendering instead of failing the operation.
var ErrNoGlyphSource = errors.New("subtitle: no usable glyph source found")

// GlyphResolver resolves a glyph source for a script at a given pixel size.
// Resolution must be deterministic for a fixed host.
type GlyphResolver interface {
	Resolve(script Script, size float64) (font.Face, error)
}

// candidateFiles lists per-script font file candidates in fallback order.
// Latin candidates double as the final fallback for every script.
var candidateFiles = map[Script][]string{
	ScriptDevanagari: {
		"NotoSansDevanagari-Regular.ttf",
		"Lohit-Devanagari.ttf",
		"NirmalaUI.ttf",
	},
	ScriptCJK: {
		"NotoSansCJK-Regular.ttf",
		"NotoSansSC-Regular.otf",
		"wqy-zenhei.ttf",
	},
	ScriptTamil: {
		"NotoSansTamil-Regular.ttf",
		"Lohit-Tamil.ttf",
		"NirmalaUI.ttf",
	},
	ScriptTelugu: {
		"NotoSansTelugu-Regular.ttf",
		"Lohit-Telugu.ttf",
		"NirmalaUI.ttf",
	},
	ScriptLatin: {
		"DejaVuSans.ttf",
		"LiberationSans-Regular.ttf",
		"Arial.ttf",
		"arial.ttf",
	},
}

// FSResolver resolves glyph sources from font files on disk. Parsed fonts
// are cached per script; the filesystem is walked once per script on first
// use, so resolution stays deterministic and cheap per render.
type FSResolver struct {
	dirs []string

	mu    sync.Mutex
	cache map[Script]*sfnt.Font
}

// DefaultFontDirs are the directories scanned when none are configured.
var DefaultFontDirs = []string{
	"/usr/share/fonts",
	"/usr/local/share/fonts",
	"/System/Library/Fonts",
	"C:/Windows/Fonts",
}

// NewFSResolver creates a resolver scanning the given directories.
// With no directories it scans the platform defaults.
func NewFSResolver(dirs []string) *FSResolver {
	if len(dirs) == 0 {
		dirs = DefaultFontDirs
	}
	return &FSResolver{
		dirs:  dirs,
		cache: make(map[Script]*sfnt.Font),
	}
}

// Resolve implements GlyphResolver. It tries the script's candidates in
// order, then the Latin fallback list, and returns ErrNoGlyphSource when
// nothing on the host can serve the script.
func (r *FSResolver) Resolve(script Script, size float64) (font.Face, error) {
	f, err := r.fontFor(script)
	if err != nil && script != ScriptLatin {
		f, err = r.fontFor(ScriptLatin)
	}
	if err != nil {
		return nil, err
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create face: %w", ErrNoGlyphSource, err)
	}
	return face, nil
}

func (r *FSResolver) fontFor(script Script) (*sfnt.Font, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if f, ok := r.cache[script]; ok {
		return f, nil
	}

	for _, name := range candidateFiles[script] {
		path := r.findFile(name)
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path) // #nosec G304 - paths come from configured font dirs
		if err != nil {
			continue
		}
		f, err := opentype.Parse(data)
		if err != nil {
			continue
		}
		r.cache[script] = f
		return f, nil
	}

	return nil, fmt.Errorf("%w: script=%s dirs=%v", ErrNoGlyphSource, script, r.dirs)
}

// findFile locates a font file by name anywhere under the configured dirs.
func (r *FSResolver) findFile(name string) string {
	for _, dir := range r.dirs {
		var found string
		_ = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return nil // unreadable subtree, keep walking siblings
			}
			if !d.IsDir() && d.Name() == name {
				found = path
				return filepath.SkipAll
			}
			return nil
		})
		if found != "" {
			return found
		}
	}
	return ""
}

// Verify interface implementation at compile time.
var _ GlyphResolver = (*FSResolver)(nil)
