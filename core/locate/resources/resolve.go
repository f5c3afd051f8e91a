package resources

import (
	"bufio"
	"context"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/npillmayer/pentype/core"
	"github.com/npillmayer/pentype/core/font"
)

// FontPathEnv is the environment variable holding the search path for
// alphabets, separated by os.PathListSeparator.
const FontPathEnv = "PENTYPE_FONTPATH"

// NotFound returns an application error for a missing alphabet.
func NotFound(res string) error {
	e := fmt.Errorf("resource missing: %v", res)
	return core.WrapError(e, core.EMISSING, "font not found: %s", res)
}

//go:embed packaged/*
var packaged embed.FS

// PackagedAlphabets lists the names of the alphabets packaged with this module.
func PackagedAlphabets() []string {
	entries, _ := packaged.ReadDir("packaged/fonts")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(names)
	return names
}

// --- Alphabets -------------------------------------------------------------

type alphabetPlusErr struct {
	alphabet *font.Alphabet
	err      error
}

// AlphabetPromise delivers an alphabet which is being loaded. Every call
// returns the same result once loading has finished.
type AlphabetPromise interface {
	Alphabet() (*font.Alphabet, error)
	Await(ctx context.Context) (*font.Alphabet, error)
}

type alphabetLoader struct {
	done   chan struct{} // closed when result is set
	result alphabetPlusErr
	cancel context.CancelFunc
}

func (loader *alphabetLoader) Alphabet() (*font.Alphabet, error) {
	return loader.Await(context.Background())
}

func (loader *alphabetLoader) Await(ctx context.Context) (*font.Alphabet, error) {
	select {
	case <-ctx.Done():
		loader.cancel()
		return nil, ctx.Err()
	case <-loader.done:
		return loader.result.alphabet, loader.result.err
	}
}

// ResolveAlphabet locates an alphabet by name and loads it with opts.
func ResolveAlphabet(name string, opts ...font.LoadOption) AlphabetPromise {
	ctx, cancel := context.WithCancel(context.Background())
	loader := &alphabetLoader{done: make(chan struct{}), cancel: cancel}
	go func() {
		defer cancel()
		defer close(loader.done)
		f, fname, err := openAlphabet(ctx, name)
		if err != nil {
			loader.result.err = err
			return
		}
		defer f.Close()
		loader.result.alphabet, loader.result.err = LoadAlphabet(f, fname, opts...)
	}()
	return loader
}

func openAlphabet(ctx context.Context, name string) (fs.File, string, error) {
	if name == "" {
		return nil, "", core.Error(core.EMISSING, "no font name given")
	}
	if u, err := url.Parse(name); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		fpath, err := cachedDownload(ctx, u)
		if err != nil {
			return nil, "", err
		}
		f, err := os.Open(fpath)
		return f, fpath, err
	}
	if f, err := os.Open(name); err == nil {
		tracer().Debugf("alphabet %s is a file", name)
		return f, name, nil
	}
	for _, dir := range filepath.SplitList(os.Getenv(FontPathEnv)) {
		for _, fname := range candidates(name) {
			fpath := filepath.Join(dir, fname)
			if f, err := os.Open(fpath); err == nil {
				tracer().Debugf("found alphabet %s in font path", fpath)
				return f, fpath, nil
			}
		}
	}
	for _, fname := range candidates(name) {
		if f, err := packaged.Open("packaged/fonts/" + fname); err == nil {
			tracer().Debugf("found alphabet as packaged font %s", fname)
			return f, fname, nil
		}
	}
	return nil, "", NotFound(name)
}

func candidates(name string) []string {
	if path.Ext(name) != "" {
		return []string{name}
	}
	return []string{name, name + ".json", name + ".cbor"}
}

func cachedDownload(ctx context.Context, u *url.URL) (string, error) {
	cachedir, err := CacheDirPath("fonts", u.Host)
	if err != nil {
		return "", core.WrapError(err, core.EINTERNAL, "no cache directory")
	}
	base := path.Base(u.Path)
	if base == "/" || base == "." {
		return "", core.Error(core.EINVALID, "URL %s does not name a font file", u)
	}
	fpath := filepath.Join(cachedir, base)
	if _, err := os.Stat(fpath); err == nil {
		tracer().Debugf("alphabet %s found in cache", base)
		return fpath, nil
	}
	tracer().Infof("downloading alphabet %s", u)
	if err := DownloadCachedFile(ctx, fpath, u.String()); err != nil {
		return "", err
	}
	return fpath, nil
}

// LoadAlphabet reads an alphabet, choosing the format from name and content:
// files ending in ".cbor" are binary, JSON starting with an array holds
// structured glyph records, any other JSON is a glyph dictionary.
func LoadAlphabet(r io.Reader, name string, opts ...font.LoadOption) (*font.Alphabet, error) {
	if strings.EqualFold(path.Ext(name), ".cbor") {
		return font.LoadCBOR(r, opts...)
	}
	br := bufio.NewReader(r)
	if startsWith(br, '[') {
		return font.LoadJSON(br, opts...)
	}
	return font.LoadStrings(br, opts...)
}

func startsWith(r *bufio.Reader, b byte) bool {
	for i := 1; ; i++ {
		p, err := r.Peek(i)
		if err != nil {
			return false
		}
		switch c := p[i-1]; c {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return c == b
		}
	}
}
