package profile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"modgrip/internal/eventbus"
)

// ErrScanInProgress is returned when a scan is requested while another is running
var ErrScanInProgress = errors.New("scan already in progress")

const maxScanDepth = 4

// DiscoveryService finds profile manifests below a directory
type DiscoveryService interface {
	StartScan(ctx context.Context, root string) error
	StopScan()
}

// discoveryService is the concrete implementation
type discoveryService struct {
	bus        eventbus.EventBus
	mu         sync.Mutex
	isScanning bool
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewDiscoveryService creates a new discovery service
func NewDiscoveryService(bus eventbus.EventBus) DiscoveryService {
	return &discoveryService{bus: bus}
}

// StartScan walks root in the background and publishes every manifest it finds
func (ds *discoveryService) StartScan(ctx context.Context, root string) error {
	ds.mu.Lock()
	if ds.isScanning {
		ds.mu.Unlock()
		return ErrScanInProgress
	}
	ds.isScanning = true

	scanCtx, cancel := context.WithCancel(ctx)
	ds.cancelFunc = cancel
	ds.mu.Unlock()

	ds.bus.Publish(eventbus.ProfileScanStartedEvent{Root: root})

	ds.wg.Add(1)
	go func() {
		defer ds.wg.Done()

		found := ds.scanDirectory(scanCtx, root)

		ds.mu.Lock()
		ds.isScanning = false
		ds.cancelFunc = nil
		ds.mu.Unlock()
		cancel()

		ds.bus.Publish(eventbus.ProfileScanCompletedEvent{ProfilesFound: found})
	}()

	return nil
}

// StopScan cancels any ongoing scan and waits for it to finish
func (ds *discoveryService) StopScan() {
	ds.mu.Lock()
	if ds.cancelFunc != nil {
		ds.cancelFunc()
	}
	ds.mu.Unlock()

	ds.wg.Wait()
}

func (ds *discoveryService) scanDirectory(ctx context.Context, root string) int {
	found := 0

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == root {
				return err
			}
			log.Printf("Error walking path %s: %v", path, err)
			return nil
		}

		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			rel, _ := filepath.Rel(root, path)
			if strings.Count(rel, string(filepath.Separator)) >= maxScanDepth {
				return fs.SkipDir
			}
			return nil
		}

		if d.Name() != ManifestName {
			return nil
		}

		ds.bus.Publish(eventbus.ProfileDiscoveredEvent{
			Name: filepath.Base(filepath.Dir(path)),
			Path: path,
		})
		found++
		return nil
	})

	if err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("Error scanning directory %s: %v", root, err)
		ds.bus.Publish(eventbus.ErrorEvent{
			Message: fmt.Sprintf("Failed to scan %s", root),
			Err:     err,
		})
	}

	return found
}

// FindProfiles synchronously lists the manifests below root, keyed by profile name
func FindProfiles(root string) (map[string]string, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("profiles dir: %w", err)
	}

	collector := &collectingBus{found: make(map[string]string)}
	ds := &discoveryService{bus: collector}
	ds.scanDirectory(context.Background(), root)
	if collector.err != nil {
		return nil, collector.err
	}
	return collector.found, nil
}

type collectingBus struct {
	found map[string]string
	err   error
}

func (c *collectingBus) Publish(e eventbus.DomainEvent) {
	switch ev := e.(type) {
	case eventbus.ProfileDiscoveredEvent:
		c.found[ev.Name] = ev.Path
	case eventbus.ErrorEvent:
		c.err = ev.Err
	}
}

func (c *collectingBus) Subscribe(eventbus.EventType, eventbus.EventHandler) func() {
	return func() {}
}

func (c *collectingBus) Close() {}
