package gamecfg

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Provider hands out config snapshots and reloads the backing file
// when it changes on disk. A reload that fails validation is logged
// and discarded; the previous snapshot stays active.
type Provider struct {
	mu   sync.RWMutex
	cfg  *Config
	path string

	watcher *fsnotify.Watcher
	closeCh chan struct{}
	once    sync.Once
}

// NewProvider loads the file at path. A missing or empty path yields a
// static provider serving Default().
func NewProvider(path string) (*Provider, error) {
	p := &Provider{path: path, closeCh: make(chan struct{})}

	if path == "" {
		p.cfg = Default()
		return p, nil
	}

	cfg, err := Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logrus.Warnf("game config %s not found, using defaults", path)
			p.cfg = Default()
			return p, nil
		}
		return nil, err
	}
	p.cfg = cfg
	return p, nil
}

// Snapshot returns the current configuration. Callers must treat the
// result as read-only.
func (p *Provider) Snapshot() *Config {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cfg
}

// Watch starts reloading the config file on write events. It is a
// no-op for a static provider.
func (p *Provider) Watch() error {
	if p.path == "" {
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// Watch the directory: editors and atomic writers replace the
	// file, which drops a watch registered on the file itself.
	if err := w.Add(filepath.Dir(p.path)); err != nil {
		_ = w.Close()
		return err
	}

	p.watcher = w
	go p.run()
	logrus.Infof("watching game config %s for changes", p.path)
	return nil
}

// Close stops the watcher.
func (p *Provider) Close() error {
	var err error
	p.once.Do(func() {
		close(p.closeCh)
		if p.watcher != nil {
			err = p.watcher.Close()
		}
	})
	return err
}

func (p *Provider) run() {
	var lastReload time.Time
	target := filepath.Clean(p.path)

	for {
		select {
		case event, ok := <-p.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			// Editors fire bursts of events for one save.
			if time.Since(lastReload) < 100*time.Millisecond {
				continue
			}
			lastReload = time.Now()
			p.reload()
		case err, ok := <-p.watcher.Errors:
			if !ok {
				return
			}
			logrus.Warnf("game config watcher error: %v", err)
		case <-p.closeCh:
			return
		}
	}
}

func (p *Provider) reload() {
	cfg, err := Load(p.path)
	if err != nil {
		logrus.Errorf("game config reload failed, keeping previous config: %v", err)
		return
	}

	p.mu.Lock()
	p.cfg = cfg
	p.mu.Unlock()
	logrus.Infof("reloaded game config from %s", p.path)
}
