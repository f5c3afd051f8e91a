package fontregistry

import (
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/npillmayer/pentype/core"
	"github.com/npillmayer/pentype/core/font"
	"github.com/npillmayer/schuko/tracing"
)

// Registry holds alphabets at design size and caches sized copies.
// A registry is safe for concurrent use.
type Registry struct {
	sync.Mutex
	alphabets map[string]*font.Alphabet
	sized     map[string]*font.Alphabet
}

var globalFontRegistry *Registry

var globalRegistryCreation sync.Once

// GlobalRegistry returns the application wide registry.
func GlobalRegistry() *Registry {
	globalRegistryCreation.Do(func() {
		globalFontRegistry = NewRegistry()
	})
	return globalFontRegistry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	fr := &Registry{
		alphabets: make(map[string]*font.Alphabet),
		sized:     make(map[string]*font.Alphabet),
	}
	return fr
}

// StoreAlphabet registers an alphabet at design size. An alphabet already
// stored under the same name is replaced, together with its sized copies.
func (fr *Registry) StoreAlphabet(normalizedName string, a *font.Alphabet) {
	if a == nil {
		tracer().Errorf("registry cannot store null alphabet")
		return
	}
	fr.Lock()
	defer fr.Unlock()
	tracer().Debugf("registry stores alphabet %s", normalizedName)
	fr.alphabets[normalizedName] = a
	prefix := normalizedName + "@"
	for k := range fr.sized {
		if strings.HasPrefix(k, prefix) {
			delete(fr.sized, k)
		}
	}
}

// Has is true if an alphabet is stored under normalizedName.
func (fr *Registry) Has(normalizedName string) bool {
	fr.Lock()
	defer fr.Unlock()
	_, ok := fr.alphabets[normalizedName]
	return ok
}

// Alphabet returns the alphabet stored as normalizedName, resized by size.
// For alphabets designed at unit height, size is the font size.
func (fr *Registry) Alphabet(normalizedName string, size float64) (*font.Alphabet, error) {
	if size <= 0 {
		return nil, core.Error(core.EINVALID, "illegal font size %g", size)
	}
	tname := appendSize(normalizedName, size)
	fr.Lock()
	defer fr.Unlock()
	if a, ok := fr.sized[tname]; ok {
		tracer().Debugf("registry found alphabet %s", tname)
		return a, nil
	}
	a, ok := fr.alphabets[normalizedName]
	if !ok {
		tracer().Infof("registry does not contain alphabet %s", normalizedName)
		return nil, core.Error(core.EMISSING, "alphabet %s not found in registry", normalizedName)
	}
	sized := a.Resized(size)
	tracer().Infof("registry has alphabet %s, caches at %.2f", normalizedName, size)
	fr.sized[tname] = sized
	return sized, nil
}

// Names lists the names of all stored alphabets.
func (fr *Registry) Names() []string {
	fr.Lock()
	defer fr.Unlock()
	names := make([]string, 0, len(fr.alphabets))
	for k := range fr.alphabets {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// LogAlphabetList traces the content of the registry.
func (fr *Registry) LogAlphabetList() {
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelInfo)
	tracer().Infof("--- registered alphabets ---")
	fr.Lock()
	for k, v := range fr.alphabets {
		tracer().Infof("alphabet [%s] has %d glyphs", k, v.Len())
	}
	for k := range fr.sized {
		tracer().Infof("sized [%s]", k)
	}
	fr.Unlock()
	tracer().Infof("----------------------------")
	tracer().SetTraceLevel(level)
}

// NormalizeName derives a registry name from a font name, file path or URL.
func NormalizeName(fname string) string {
	fname = strings.TrimSpace(fname)
	fname = path.Base(strings.ReplaceAll(fname, "\\", "/"))
	if dot := strings.LastIndex(fname, "."); dot > 0 {
		fname = fname[:dot]
	}
	fname = strings.ReplaceAll(fname, " ", "_")
	return strings.ToLower(fname)
}

func appendSize(fname string, size float64) string {
	return fmt.Sprintf("%s@%.2f", fname, size)
}
