package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/darkhz/playerview/utils"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/semaphore"
)

// fetchLock serializes writes to the shared cache directory. Each
// caller still issues its own request.
var fetchLock = semaphore.NewWeighted(1)

// fetch downloads a runtime executable into the cache directory and
// returns its path. An executable downloaded earlier is reused.
func fetch(ctx context.Context, source string) (string, error) {
	uri, err := utils.IsValidURL(source)
	if err != nil {
		return "", fmt.Errorf("Loader: Invalid source URL %s", source)
	}

	dir, err := cacheDir()
	if err != nil {
		return "", err
	}

	target := filepath.Join(dir, filepath.Base(uri.Path))

	if err := fetchLock.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer fetchLock.Release(1)

	if _, err := os.Stat(target); err == nil {
		return target, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return "", err
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("Loader: Could not fetch %s: %w", source, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Loader: Could not fetch %s (%s)", source, res.Status)
	}

	file, err := os.OpenFile(target+".part", os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0755)
	if err != nil {
		return "", fmt.Errorf("Loader: Cannot create %s", target)
	}

	bar := progressbar.NewOptions64(
		res.ContentLength,
		progressbar.OptionSetDescription(filepath.Base(target)),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionClearOnFinish(),
	)

	_, err = io.Copy(io.MultiWriter(file, bar), res.Body)
	file.Close()
	if err != nil {
		os.Remove(target + ".part")
		return "", fmt.Errorf("Loader: Could not fetch %s: %w", source, err)
	}

	if err := os.Rename(target+".part", target); err != nil {
		return "", err
	}

	return target, nil
}

// cacheDir returns the directory downloaded runtimes are stored in.
func cacheDir() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("Loader: Cannot get cache directory")
	}

	dir = filepath.Join(dir, "playerview")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("Loader: Cannot create %s", dir)
	}

	return dir, nil
}
