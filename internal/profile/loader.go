package profile

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"modgrip/internal/domain"
	"modgrip/internal/eventbus"
	"modgrip/internal/tasks"
)

// ErrUnsupportedSource is returned for sources that are neither a path nor an http(s) URL
var ErrUnsupportedSource = errors.New("unsupported profile source")

// Loader reads profiles from the built-in fixture, the filesystem or the network
type Loader struct {
	bus      eventbus.EventBus
	tasks    *tasks.Manager
	client   *http.Client
	cacheDir string
	store    ModStore
}

// NewLoader creates a loader that fills store and answers ProfileLoadRequested events.
// cacheDir may be empty to disable caching of downloaded manifests.
func NewLoader(bus eventbus.EventBus, manager *tasks.Manager, store ModStore, cacheDir string) *Loader {
	l := &Loader{
		bus:      bus,
		tasks:    manager,
		client:   http.DefaultClient,
		cacheDir: cacheDir,
		store:    store,
	}

	if bus != nil {
		bus.Subscribe(eventbus.EventProfileLoadRequested, func(e eventbus.DomainEvent) {
			if event, ok := e.(eventbus.ProfileLoadRequestedEvent); ok {
				l.LoadAndPublish(context.Background(), event.Source)
			}
		})
	}

	return l
}

// Load reads the profile named by source.
// An empty source is the built-in profile, a directory is searched for mods.yml and
// http(s) URLs are downloaded as a task.
func (l *Loader) Load(ctx context.Context, source string) (domain.Profile, error) {
	if source == "" {
		return Fixture().toProfile(""), nil
	}

	if u, err := url.Parse(source); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		switch u.Scheme {
		case "http", "https":
			return l.download(ctx, u.String())
		case "file":
			return l.loadPath(u.Path)
		default:
			return domain.Profile{}, fmt.Errorf("%w: %s", ErrUnsupportedSource, source)
		}
	}

	return l.loadPath(source)
}

// LoadAndPublish loads source, stores the mods and reports the outcome on the bus
func (l *Loader) LoadAndPublish(ctx context.Context, source string) {
	p, err := l.Load(ctx, source)
	if err != nil {
		log.Printf("Failed to load profile %q: %v", source, err)
		if l.bus != nil {
			l.bus.Publish(eventbus.ProfileLoadFailedEvent{Source: source, Err: err})
		}
		return
	}

	if l.store != nil {
		l.store.Replace(p.Mods)
	}
	if l.bus != nil {
		l.bus.Publish(eventbus.ModsLoadedEvent{Profile: p})
	}
}

func (l *Loader) loadPath(path string) (domain.Profile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("open profile: %w", err)
	}
	if info.IsDir() {
		path = filepath.Join(path, ManifestName)
	}

	f, err := os.Open(path)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("open profile: %w", err)
	}
	defer f.Close()

	m, err := ParseManifest(f)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("read %s: %w", path, err)
	}
	if m.Profile == "" {
		m.Profile = filepath.Base(filepath.Dir(path))
	}
	return m.toProfile(path), nil
}

func (l *Loader) download(ctx context.Context, rawURL string) (domain.Profile, error) {
	var m *Manifest

	meta := tasks.Metadata{
		Title:        "Download profile",
		Kind:         tasks.KindDownload,
		ProgressUnit: tasks.UnitBytes,
		URL:          rawURL,
	}
	err := l.runTask(ctx, meta, func(ctx context.Context, r *tasks.Reporter) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return err
		}
		resp, err := l.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("download %s: %s", rawURL, resp.Status)
		}
		if resp.ContentLength > 0 {
			r.SetTotal(resp.ContentLength)
		}

		var body io.Reader = &countingReader{r: resp.Body, report: r.Add}
		var cache *os.File
		if path := l.cachePath(rawURL); path != "" {
			if err := os.MkdirAll(filepath.Dir(path), 0755); err == nil {
				if cache, err = os.CreateTemp(filepath.Dir(path), "download-*"); err == nil {
					defer os.Remove(cache.Name())
					defer cache.Close()
					body = io.TeeReader(body, cache)
				}
			}
		}

		m, err = ParseManifest(body)
		if err != nil {
			return err
		}
		if cache != nil && cache.Close() == nil {
			_ = os.Rename(cache.Name(), l.cachePath(rawURL))
		}
		r.Succeed(fmt.Sprintf("%d mods", len(m.Mods)))
		return nil
	})
	if err != nil {
		cached, cacheErr := l.readCache(rawURL)
		if cacheErr != nil || ctx.Err() != nil {
			return domain.Profile{}, fmt.Errorf("download profile: %w", err)
		}
		log.Printf("Download of %s failed, using cached copy: %v", rawURL, err)
		m = cached
	}

	if m.Profile == "" {
		m.Profile = profileNameFromURL(rawURL)
	}
	return m.toProfile(rawURL), nil
}

// readCache parses the manifest kept from the last successful download of rawURL
func (l *Loader) readCache(rawURL string) (*Manifest, error) {
	path := l.cachePath(rawURL)
	if path == "" {
		return nil, os.ErrNotExist
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseManifest(f)
}

func (l *Loader) runTask(ctx context.Context, meta tasks.Metadata, fn tasks.Func) error {
	if l.tasks == nil {
		return fn(ctx, &tasks.Reporter{})
	}
	return l.tasks.Run(ctx, meta, fn)
}

// cachePath returns where a downloaded manifest is kept, or "" when caching is off
func (l *Loader) cachePath(rawURL string) string {
	if l.cacheDir == "" {
		return ""
	}
	sum := sha1.Sum([]byte(rawURL))
	return filepath.Join(l.cacheDir, "manifests", hex.EncodeToString(sum[:])+".yml")
}

func profileNameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	base := strings.TrimSuffix(filepath.Base(u.Path), filepath.Ext(u.Path))
	if base == "" || base == "." || base == "/" || base == "mods" {
		return u.Host
	}
	return base
}

type countingReader struct {
	r      io.Reader
	report func(int64)
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 {
		c.report(int64(n))
	}
	return n, err
}
