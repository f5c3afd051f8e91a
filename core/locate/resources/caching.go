package resources

import (
	"context"
	"io"
	"net/http"
	"os"
	"path"

	"github.com/npillmayer/pentype/core"
)

// AppKey names the application specific sub-folder of the user's cache directory.
const AppKey = "pentype"

// DownloadCachedFile will download a url to a local file (usually located in the
// user's cache directory).
func DownloadCachedFile(ctx context.Context, filepath string, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return core.WrapError(err, core.EINVALID, "cannot request %s", url)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return core.WrapError(err, core.EMISSING, "cannot download %s", url)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return core.Error(core.EMISSING, "cannot download %s: %s", url, resp.Status)
	}
	out, err := os.Create(filepath)
	if err != nil {
		return err
	}
	if _, err = io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(filepath)
		return err
	}
	return out.Close()
}

// CacheDirPath checks and possibly creates a folder in the user's cache
// directory. The base cache directory is taken from `os.UserCacheDir()`, plus
// AppKey. Clients may specify a sequence of folder names, which will be
// appended to the base cache path. Non-existing sub-folders will be created as
// necessary (with permissions 755).
func CacheDirPath(subfolders ...string) (string, error) {
	cachedir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	subs := path.Join(subfolders...)
	cachedir = path.Join(cachedir, AppKey, subs)
	tracer().Debugf("caching in %s", cachedir)
	_, err = os.Stat(cachedir)
	if os.IsNotExist(err) {
		err = os.MkdirAll(cachedir, 0755)
		if err != nil {
			return "", err
		}
	}
	return cachedir, nil
}
