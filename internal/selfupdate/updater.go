package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
)

var (
	ErrDevBuild      = errors.New("cannot update a development build")
	ErrAlreadyLatest = errors.New("already running the latest version")
	ErrChecksum      = errors.New("checksum verification failed")
)

const (
	binaryBase    = "tensebunny"
	checksumsFile = "checksums.txt"
)

// UpdateInput selects the release to install. An empty TargetVersion
// means the latest published release.
type UpdateInput struct {
	CurrentVersion string
	TargetVersion  string
}

// UpdateProgress is reported once per stage: check, download, verify,
// extract, apply and done.
type UpdateProgress struct {
	Stage   string
	Message string
}

// releasePlan locates the files of one tagged release for this platform.
type releasePlan struct {
	tag   string
	asset string
	base  string
}

func (p releasePlan) url(file string) string {
	return p.base + "/" + path.Join("releases", "download", p.tag, file)
}

// Update downloads the target release, checks it against the published
// checksums and swaps it in place of the running executable.
func (c *Checker) Update(ctx context.Context, input *UpdateInput, progress func(UpdateProgress)) error {
	if input.CurrentVersion == "(devel)" {
		return ErrDevBuild
	}
	report := func(stage, format string, args ...any) {
		if progress != nil {
			progress(UpdateProgress{Stage: stage, Message: fmt.Sprintf(format, args...)})
		}
	}

	tag := input.TargetVersion
	if tag == "" {
		report("check", "Looking up the latest release...")
		res, err := c.Check(ctx, &CheckInput{Version: input.CurrentVersion})
		if err != nil {
			return fmt.Errorf("check for updates: %w", err)
		}
		if !res.UpdateAvailable {
			return ErrAlreadyLatest
		}
		tag = res.LatestVersion
	}

	asset, err := assetName()
	if err != nil {
		return err
	}
	plan := releasePlan{
		tag:   tag,
		asset: asset,
		base:  fmt.Sprintf("%s/%s/%s", strings.TrimRight(c.downloadBaseURL, "/"), c.owner, c.repo),
	}

	report("download", "Fetching %s for %s...", asset, tag)
	archive, err := c.fetch(ctx, plan.url(asset), "")
	if err != nil {
		return fmt.Errorf("download archive: %w", err)
	}

	report("verify", "Comparing against %s...", checksumsFile)
	sums, err := c.fetch(ctx, plan.url(checksumsFile), "")
	if err != nil {
		return fmt.Errorf("download checksums: %w", err)
	}
	want, found := parseChecksums(sums)[asset]
	if !found {
		return fmt.Errorf("%s lists no entry for %s", checksumsFile, asset)
	}
	if err := verifyChecksum(archive, want); err != nil {
		return err
	}

	report("extract", "Unpacking %s...", binaryFor(asset))
	bin, err := extractBinary(archive, asset)
	if err != nil {
		return fmt.Errorf("extract binary: %w", err)
	}

	report("apply", "Replacing the installed binary...")
	exe, err := c.execPath()
	if err != nil {
		return fmt.Errorf("resolve executable path: %w", err)
	}
	sum := sha256.Sum256(bin)
	if err := applyUpdate(bin, exe, sum[:]); err != nil {
		return fmt.Errorf("apply update: %w", err)
	}

	report("done", "tensebunny is now at %s", tag)
	return nil
}

func assetName() (string, error) {
	return assetNameFor(runtime.GOOS, runtime.GOARCH)
}

var releaseArch = map[string]string{
	"amd64": "x86_64",
	"arm64": "arm64",
	"386":   "i386",
}

// assetNameFor mirrors the archive names the release pipeline publishes.
// macOS ships a single universal tarball.
func assetNameFor(goos, goarch string) (string, error) {
	var osLabel, ext string
	switch goos {
	case "darwin":
		return binaryBase + "_Darwin_all.tar.gz", nil
	case "linux":
		osLabel, ext = "Linux", ".tar.gz"
	case "windows":
		osLabel, ext = "Windows", ".zip"
	default:
		return "", fmt.Errorf("unsupported operating system: %s", goos)
	}
	arch, ok := releaseArch[goarch]
	if !ok {
		return "", fmt.Errorf("unsupported architecture: %s", goarch)
	}
	return binaryBase + "_" + osLabel + "_" + arch + ext, nil
}

// fetch GETs url and returns the whole body. accept, when set, becomes
// the Accept header.
func (c *Checker) fetch(ctx context.Context, url, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: HTTP %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// parseChecksums reads the "<sha256>  <file>" lines of a checksums file.
// Lines of any other shape are ignored.
func parseChecksums(data []byte) map[string]string {
	sums := map[string]string{}
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		if f := strings.Fields(sc.Text()); len(f) == 2 {
			sums[f[1]] = f[0]
		}
	}
	return sums
}

func verifyChecksum(data []byte, expectedHex string) error {
	sum := sha256.Sum256(data)
	if got := hex.EncodeToString(sum[:]); got != expectedHex {
		return fmt.Errorf("%w: want %s, have %s", ErrChecksum, expectedHex, got)
	}
	return nil
}

func binaryFor(asset string) string {
	if strings.HasSuffix(asset, ".zip") {
		return binaryBase + ".exe"
	}
	return binaryBase
}

// extractBinary pulls the executable out of a release archive. Windows
// assets are zips, the rest gzipped tarballs.
func extractBinary(archive []byte, asset string) ([]byte, error) {
	name := binaryFor(asset)
	var (
		data []byte
		err  error
	)
	if strings.HasSuffix(asset, ".zip") {
		data, err = readZipEntry(archive, name)
	} else {
		data, err = readTarEntry(archive, name)
	}
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("%s not found in %s", name, asset)
	}
	return data, nil
}

// readTarEntry returns nil data when no regular file matches name.
func readTarEntry(archive []byte, name string) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(archive))
	if err != nil {
		return nil, fmt.Errorf("open gzip: %w", err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		switch {
		case errors.Is(err, io.EOF):
			return nil, nil
		case err != nil:
			return nil, fmt.Errorf("read tar: %w", err)
		case hdr.Typeflag == tar.TypeReg && filepath.Base(hdr.Name) == name:
			return io.ReadAll(tr)
		}
	}
}

// readZipEntry returns nil data when no file matches name.
func readZipEntry(archive []byte, name string) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	for _, f := range zr.File {
		if filepath.Base(f.Name) != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		return data, err
	}
	return nil, nil
}

// applyUpdate stages the new binary next to target, confirms the staged
// bytes still hash to wantSum, then renames it over target keeping the
// original file mode.
func applyUpdate(bin []byte, target string, wantSum []byte) error {
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("stat target: %w", err)
	}

	stage, err := os.MkdirTemp(filepath.Dir(target), "."+binaryBase+"-update-*")
	if err != nil {
		return fmt.Errorf("create staging dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(stage) }()

	staged := filepath.Join(stage, binaryBase+"-new")
	if err := os.WriteFile(staged, bin, 0o600); err != nil {
		return fmt.Errorf("stage binary: %w", err)
	}

	onDisk, err := os.ReadFile(staged)
	if err != nil {
		return fmt.Errorf("read staged binary: %w", err)
	}
	if sum := sha256.Sum256(onDisk); !bytes.Equal(sum[:], wantSum) {
		return fmt.Errorf("%w: staged binary changed after write", ErrChecksum)
	}

	if err := os.Rename(staged, target); err != nil {
		return fmt.Errorf("swap binary: %w", err)
	}
	return os.Chmod(target, info.Mode())
}
