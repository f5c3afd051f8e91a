package resources

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/npillmayer/pentype/core"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheDownload(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pentype.resources")
	defer teardown()
	//
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.URL.Path != "/fonts/dash.json" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `{ "-": "G0 X0 Y0.25\nG0 Z9\nG1 X0.3 Y0.25" }`)
	}))
	defer srv.Close()
	//
	alphabet, err := ResolveAlphabet(srv.URL + "/fonts/dash.json").Alphabet()
	require.NoError(t, err)
	assert.True(t, alphabet.Has("-"))
	assert.Equal(t, 1, requests)
	_, err = ResolveAlphabet(srv.URL + "/fonts/dash.json").Alphabet()
	require.NoError(t, err)
	assert.Equal(t, 1, requests, "second resolve should be served from the cache")
	//
	_, err = ResolveAlphabet(srv.URL + "/fonts/missing.json").Alphabet()
	assert.Equal(t, core.EMISSING, core.Code(err))
	dir, err := CacheDirPath("fonts")
	require.NoError(t, err)
	_, err = os.Stat(dir)
	assert.NoError(t, err)
}
