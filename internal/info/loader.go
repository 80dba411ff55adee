package info

import (
	"cmp"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Loader reads help features from a directory of YAML files and keeps them in memory
type Loader struct {
	dir      string
	validate *validator.Validate

	mu       sync.RWMutex
	features map[string]*Feature
	loaded   bool
}

// NewLoader creates a loader for dir. Nothing is read until Load or the first lookup.
func NewLoader(dir string) *Loader {
	return &Loader{
		dir:      dir,
		validate: validator.New(),
		features: make(map[string]*Feature),
	}
}

// Load reads every *.yaml file in the directory, replacing what was loaded before.
// Nothing is replaced when any file is invalid.
func (l *Loader) Load() error {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgReadDirFailed, err)
	}

	features := make(map[string]*Feature)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileSuffix) {
			continue
		}

		feature, err := l.loadFeatureFile(filepath.Join(l.dir, entry.Name()))
		if err != nil {
			return err
		}
		if feature.Name == "" {
			feature.Name = strings.TrimSuffix(entry.Name(), fileSuffix)
		}
		feature.Name = strings.ToLower(feature.Name)

		if err := l.validate.Struct(feature); err != nil {
			return fmt.Errorf("%s %s: %w", ErrMsgInvalidFeature, entry.Name(), err)
		}
		if _, dup := features[feature.Name]; dup {
			return fmt.Errorf(ErrMsgDuplicateFeature, feature.Name)
		}
		features[feature.Name] = feature
	}

	l.mu.Lock()
	l.features = features
	l.loaded = true
	l.mu.Unlock()

	slog.Info(LogMsgLoaded, "dir", l.dir, "features", len(features))
	return nil
}

func (l *Loader) loadFeatureFile(path string) (*Feature, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", ErrMsgReadFileFailed, path, err)
	}

	var feature Feature
	if err := yaml.Unmarshal(data, &feature); err != nil {
		return nil, fmt.Errorf("%s %s: %w", ErrMsgParseFileFailed, path, err)
	}

	topics := make(map[string]Topic, len(feature.Topics))
	for name, topic := range feature.Topics {
		name = strings.ToLower(name)
		topic.Name = name
		topics[name] = topic
	}
	feature.Topics = topics
	return &feature, nil
}

// ensureLoaded loads lazily on first use; a failed load is retried next time
func (l *Loader) ensureLoaded() {
	l.mu.RLock()
	loaded := l.loaded
	l.mu.RUnlock()
	if loaded {
		return
	}
	if err := l.Load(); err != nil {
		slog.Error(LogMsgLoadFailed, "dir", l.dir, "error", err)
	}
}

// Feature returns a feature by name
func (l *Loader) Feature(name string) (*Feature, bool) {
	l.ensureLoaded()
	l.mu.RLock()
	defer l.mu.RUnlock()

	feature, ok := l.features[strings.ToLower(name)]
	return feature, ok
}

// Topic returns a topic within a feature
func (l *Loader) Topic(featureName, topicName string) (*Topic, bool) {
	feature, ok := l.Feature(featureName)
	if !ok {
		return nil, false
	}
	topic, ok := feature.Topics[strings.ToLower(topicName)]
	if !ok {
		return nil, false
	}
	return &topic, true
}

// SearchTopic finds a topic by name across all features.
// Features are searched in name order so the answer is stable.
func (l *Loader) SearchTopic(topicName string) (*Topic, string, bool) {
	l.ensureLoaded()
	l.mu.RLock()
	defer l.mu.RUnlock()

	topicName = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(topicName), "/"))
	for _, name := range sortedKeys(l.features) {
		if topic, ok := l.features[name].Topics[topicName]; ok {
			return &topic, name, true
		}
	}
	return nil, "", false
}

// Features returns every feature ordered by Order, then name
func (l *Loader) Features() []*Feature {
	l.ensureLoaded()
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*Feature, 0, len(l.features))
	for _, f := range l.features {
		out = append(out, f)
	}
	slices.SortFunc(out, func(a, b *Feature) int {
		if c := cmp.Compare(a.Order, b.Order); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
