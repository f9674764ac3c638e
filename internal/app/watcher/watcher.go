package watcher

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"

	"logviewer/internal/app/bus"
	"logviewer/internal/config"
	"logviewer/internal/config/logger"
)

// editorLeftovers are files editors write next to the watched ones
var editorLeftovers = []string{"*.swp", "*.swx", "*~", ".#*", "*.tmp"}

// Loader reads the configuration from path
type Loader func(path string) (*config.Config, error)

//go:generate mockgen -source=watcher.go -destination=watcher_mock.go -package=watcher

// Watcher reloads the configuration when the config file or .env changes
type Watcher interface {
	Start(ctx context.Context) error
	Close()
}

// watcher implements the Watcher interface
type watcher struct {
	cfg       *config.Config
	bus       bus.Bus
	load      Loader
	fsWatcher *fsnotify.Watcher
	matcher   Matcher
	debouncer Debouncer
	dirs      []string
	log       logger.Logger
	mu        sync.RWMutex
	started   bool
	closed    bool
}

// NewWatcher creates a new Watcher instance
func NewWatcher(cfg *config.Config, b bus.Bus, log logger.Logger) (Watcher, error) {
	return newWatcher(cfg, b, config.Load, log)
}

func newWatcher(cfg *config.Config, b bus.Bus, load Loader, log logger.Logger) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	matcher, err := NewMatcher(watchedNames(cfg), editorLeftovers)
	if err != nil {
		fsw.Close()
		return nil, err
	}

	w := &watcher{
		cfg:       cfg,
		bus:       b,
		load:      load,
		fsWatcher: fsw,
		matcher:   matcher,
		log:       log.WithComponent("WATCHER"),
	}

	w.debouncer = NewDebouncer(cfg.Watch.Debounce, w.reload)

	return w, nil
}

// watchedNames returns the base names of files that trigger a reload
func watchedNames(cfg *config.Config) []string {
	name := config.ConfigFileName
	if cfg.Path != "" {
		name = filepath.Base(cfg.Path)
	}

	return []string{name, config.EnvFileName}
}

// watchedDirs returns the config file directory and the working directory
func watchedDirs(cfg *config.Config) ([]string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	dirs := []string{cwd}

	if cfg.Path != "" {
		abs, err := filepath.Abs(cfg.Path)
		if err != nil {
			return nil, err
		}

		if dir := filepath.Dir(abs); !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}

	return dirs, nil
}

// Start begins watching until ctx is cancelled or Close is called
func (w *watcher) Start(ctx context.Context) error {
	if !w.cfg.Watch.Enabled {
		w.log.Debug().Msg("Config watching disabled")
		return nil
	}

	dirs, err := watchedDirs(w.cfg)
	if err != nil {
		return err
	}

	w.mu.Lock()

	if w.closed || w.started {
		w.mu.Unlock()
		return nil
	}

	for _, dir := range dirs {
		if err := w.fsWatcher.Add(dir); err != nil {
			w.mu.Unlock()
			return err
		}
	}

	w.started = true
	w.dirs = dirs

	w.mu.Unlock()

	go w.processEvents()

	go func() {
		<-ctx.Done()
		w.Close()
	}()

	w.log.Info().Msgf("Started watching %v", dirs)
	w.bus.Publish(bus.Message{
		Type: bus.EventWatchStarted,
		Data: bus.Payload{Name: w.configPath()},
	})

	return nil
}

// Close stops the watcher and releases resources
func (w *watcher) Close() {
	w.mu.Lock()

	if w.closed {
		w.mu.Unlock()
		return
	}

	w.closed = true
	started := w.started

	w.debouncer.Stop()
	w.fsWatcher.Close()

	w.mu.Unlock()

	if started {
		w.log.Info().Msg("Stopped watching config")
		w.bus.Publish(bus.Message{
			Type: bus.EventWatchStopped,
			Data: bus.Payload{Name: w.configPath()},
		})
	}
}

// processEvents handles fsnotify events until the watcher is closed
func (w *watcher) processEvents() {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}

			w.log.Error().Err(err).Msg("Watcher error")
		}
	}
}

// handleEvent forwards relevant changes of watched files to the debouncer
func (w *watcher) handleEvent(event fsnotify.Event) {
	if !isRelevantEvent(event) {
		return
	}

	if w.matcher.Match(filepath.Base(event.Name)) {
		w.debouncer.Trigger(filepath.Base(event.Name))
	}
}

// reload re-reads the configuration and publishes the outcome
func (w *watcher) reload(files []string) {
	w.mu.RLock()
	closed := w.closed
	w.mu.RUnlock()

	if closed {
		return
	}

	if slices.Contains(files, config.EnvFileName) {
		if err := godotenv.Overload(config.EnvFileName); err != nil && !os.IsNotExist(err) {
			w.log.Warn().Err(err).Msg("Failed to reload .env")
		}
	}

	cfg, err := w.load(w.cfg.Path)
	if err != nil {
		w.log.Warn().Err(err).Msgf("Config reload failed after change in %v", files)
	} else {
		w.log.Info().Msgf("Config reloaded after change in %v", files)
	}

	w.bus.Publish(bus.Message{
		Type:     bus.EventConfigReloaded,
		Data:     bus.ConfigReloaded{Path: w.configPath(), Config: cfg, Error: err},
		Critical: true,
	})
}

// configPath returns the watched config file for display
func (w *watcher) configPath() string {
	if w.cfg.Path != "" {
		return w.cfg.Path
	}

	return config.ConfigFileName
}

// isRelevantEvent returns true if the event should trigger a reload
func isRelevantEvent(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) ||
		event.Has(fsnotify.Rename)
}
