// Package manifest discovers bean configurations from YAML manifests.
//
// A manifest lists configuration identifiers, either as a plain sequence
//
//	- app.GreetingConfiguration
//	- app.ClockConfiguration
//
// or under a configurations key
//
//	configurations:
//	  - app.GreetingConfiguration
//
// Identifiers are resolved through a Catalog the application fills at
// build time, so nothing is instantiated by reflection.
package manifest

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/km-arc/go-beans/framework/beans"
	"github.com/km-arc/go-beans/framework/config"
)

// DefaultDir is the manifest directory used when none is configured.
const DefaultDir = "bean-configurations"

// ErrUnknownConfiguration is the cause reported for identifiers missing from the catalog.
var ErrUnknownConfiguration = errors.New("manifest: unknown bean configuration")

// ── Catalog ───────────────────────────────────────────────────────────────────

// Factory builds a configuration, optionally from the boot configuration.
type Factory func(cfg *config.Config) (beans.BeanConfiguration, error)

// Catalog maps configuration identifiers to factories.
//
//	catalog := manifest.NewCatalog()
//	catalog.Add("app.ClockConfiguration", func() beans.BeanConfiguration { return NewClockConfiguration() })
//	catalog.AddWithConfig("app.MailConfiguration", func(cfg *config.Config) (beans.BeanConfiguration, error) {
//	    return NewMailConfiguration(cfg.App.Name)
//	})
type Catalog struct {
	factories map[string]Factory
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{factories: make(map[string]Factory)}
}

// Add registers a factory that needs no arguments.
func (c *Catalog) Add(id string, factory func() beans.BeanConfiguration) {
	c.factories[id] = func(*config.Config) (beans.BeanConfiguration, error) {
		return factory(), nil
	}
}

// AddWithConfig registers a factory that receives the boot configuration.
func (c *Catalog) AddWithConfig(id string, factory Factory) {
	c.factories[id] = factory
}

// Merge copies every factory of other into c, replacing identical ids.
func (c *Catalog) Merge(other *Catalog) {
	for id, factory := range other.factories {
		c.factories[id] = factory
	}
}

// IDs returns the registered identifiers, sorted.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.factories))
	for id := range c.factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Instantiate builds the configuration registered as id.
func (c *Catalog) Instantiate(id string, cfg *config.Config) (beans.BeanConfiguration, error) {
	subject := fmt.Sprintf("bean configuration %q", id)

	factory, ok := c.factories[id]
	if !ok {
		return nil, beans.NewBeanInstantiationError(subject, errors.WithStack(ErrUnknownConfiguration))
	}
	configuration, err := factory(cfg)
	if err != nil {
		return nil, beans.NewBeanInstantiationError(subject, err)
	}
	if beans.IsNil(configuration) {
		return nil, beans.NewBeanInstantiationError(subject, errors.New("factory returned no configuration"))
	}
	return configuration, nil
}

// ── Scanner ───────────────────────────────────────────────────────────────────

// Scanner reads manifests and instantiates the configurations they list.
type Scanner struct {
	catalog *Catalog
	config  *config.Config
	logger  *zap.Logger
}

// NewScanner creates a scanner. cfg is handed to configuration factories;
// logger may be nil.
func NewScanner(catalog *Catalog, cfg *config.Config, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{catalog: catalog, config: cfg, logger: logger}
}

// Scan instantiates the configurations listed by every *.yaml and *.yml file
// in dir, files in name order. A missing dir lists nothing. An identifier
// listed more than once is instantiated once.
//
// Every failure is a *beans.BeanInstantiationError naming the manifest or
// the identifier at fault.
func (s *Scanner) Scan(fsys fs.FS, dir string) ([]beans.BeanConfiguration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("no bean configuration manifests", zap.String("dir", dir))
		return nil, nil
	}
	if err != nil {
		return nil, beans.NewBeanInstantiationError(fmt.Sprintf("manifest directory %s", dir), err)
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() || !isManifest(entry.Name()) {
			continue
		}
		file := path.Join(dir, entry.Name())
		listed, err := readManifest(fsys, file)
		if err != nil {
			return nil, beans.NewBeanInstantiationError(fmt.Sprintf("manifest %s", file), err)
		}
		s.logger.Debug("read bean configuration manifest", zap.String("file", file), zap.Int("configurations", len(listed)))
		ids = append(ids, listed...)
	}
	return s.Instantiate(ids)
}

// Instantiate builds the configurations for ids, skipping repeated ids.
func (s *Scanner) Instantiate(ids []string) ([]beans.BeanConfiguration, error) {
	seen := make(map[string]bool, len(ids))
	out := make([]beans.BeanConfiguration, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			s.logger.Debug("bean configuration listed twice", zap.String("id", id))
			continue
		}
		seen[id] = true

		configuration, err := s.catalog.Instantiate(id, s.config)
		if err != nil {
			return nil, err
		}
		out = append(out, configuration)
	}
	return out, nil
}

// ── manifest format ───────────────────────────────────────────────────────────

type document struct {
	Configurations []string `yaml:"configurations"`
}

func isManifest(name string) bool {
	ext := path.Ext(name)
	return ext == ".yaml" || ext == ".yml"
}

func readManifest(fsys fs.FS, file string) ([]string, error) {
	data, err := fs.ReadFile(fsys, file)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse returns the identifiers listed by one manifest.
func Parse(data []byte) ([]string, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.Wrap(err, "malformed manifest")
	}
	if len(root.Content) == 0 {
		return nil, nil
	}

	var ids []string
	node := root.Content[0]
	switch node.Kind {
	case yaml.SequenceNode:
		if err := node.Decode(&ids); err != nil {
			return nil, errors.Wrap(err, "malformed manifest")
		}
	case yaml.MappingNode:
		var doc document
		if err := node.Decode(&doc); err != nil {
			return nil, errors.Wrap(err, "malformed manifest")
		}
		ids = doc.Configurations
	default:
		return nil, errors.Errorf("malformed manifest: expected a list of configuration identifiers at line %d", node.Line)
	}

	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	return out, nil
}
