package conduit

import (
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// ContextConfig declares one interaction context in a layout file.
type ContextConfig struct {
	Name      string `yaml:"name"`
	Priority  int    `yaml:"priority"`
	Exclusive bool   `yaml:"exclusive"`
	// Enabled defaults to true when omitted.
	Enabled *bool `yaml:"enabled"`
}

// LocalSpec is the layout-file form of LocalConfig.
type LocalSpec struct {
	DragThreshold float64  `yaml:"dragThreshold"`
	Buttons       []string `yaml:"buttons"`
	Global        bool     `yaml:"global"`
	ImmediateDrag bool     `yaml:"immediateDrag"`
}

// Config is a parsed editor input layout:
//
//	debug: false
//	contexts:
//	  - {name: viewport, priority: 0}
//	  - {name: menu, priority: 100, exclusive: true, enabled: false}
//	locals:
//	  viewport: {dragThreshold: 3, buttons: [left, middle]}
//	bindings:
//	  viewport:
//	    F: frame
//	    Ctrl+Z: undo
type Config struct {
	Debug    bool                         `yaml:"debug"`
	Contexts []ContextConfig              `yaml:"contexts"`
	Locals   map[string]LocalSpec         `yaml:"locals"`
	Binds    map[string]map[string]string `yaml:"bindings"`

	locals map[string]LocalConfig
	chords map[string][]keyBinding
}

// ErrUnknownContext is returned by Config lookups for undeclared names.
var ErrUnknownContext = errors.New("conduit: unknown context")

// LoadConfig parses and validates a YAML layout.
func LoadConfig(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse input config: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("parse input config: %w", err)
	}
	return &c, nil
}

func (c *Config) validate() error {
	seen := make(map[string]bool, len(c.Contexts))
	for i, cc := range c.Contexts {
		if cc.Name == "" {
			return fmt.Errorf("context %d: missing name", i)
		}
		if seen[cc.Name] {
			return fmt.Errorf("context %q: declared twice", cc.Name)
		}
		seen[cc.Name] = true
	}

	c.locals = make(map[string]LocalConfig, len(c.Locals))
	for name, spec := range c.Locals {
		lc := LocalConfig{
			Name:          name,
			DragThreshold: spec.DragThreshold,
			ImmediateDrag: spec.ImmediateDrag,
			Global:        spec.Global,
		}
		for _, s := range spec.Buttons {
			b, err := ParseMouseButton(s)
			if err != nil {
				return fmt.Errorf("local %q: %w", name, err)
			}
			lc.Buttons = append(lc.Buttons, b)
		}
		c.locals[name] = lc.withDefaults()
	}

	c.chords = make(map[string][]keyBinding, len(c.Binds))
	for name, table := range c.Binds {
		if !seen[name] {
			return fmt.Errorf("bindings %q: %w", name, ErrUnknownContext)
		}
		// Sorted to make the bind order deterministic.
		keys := make([]string, 0, len(table))
		for k := range table {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			ch, err := ParseChord(k)
			if err != nil {
				return fmt.Errorf("bindings %q: %w", name, err)
			}
			c.chords[name] = append(c.chords[name], keyBinding{chord: ch, action: table[k]})
		}
	}
	return nil
}

// NewContext builds the context declared under name.
func (c *Config) NewContext(name string) (*Context, error) {
	for _, cc := range c.Contexts {
		if cc.Name != name {
			continue
		}
		ctx := NewContext(cc.Name, cc.Priority)
		ctx.SetExclusive(cc.Exclusive)
		if cc.Enabled != nil {
			ctx.SetEnabled(*cc.Enabled)
		}
		return ctx, nil
	}
	return nil, fmt.Errorf("context %q: %w", name, ErrUnknownContext)
}

// Local returns the local manager configuration declared under name, or
// the defaults (named name) when there is none.
func (c *Config) Local(name string) LocalConfig {
	if lc, ok := c.locals[name]; ok {
		return lc
	}
	lc := DefaultLocalConfig()
	lc.Name = name
	return lc
}

// Bindings returns the chord-to-action table declared for a context. The
// returned map is a copy.
func (c *Config) Bindings(name string) map[string]string {
	out := make(map[string]string, len(c.Binds[name]))
	for k, v := range c.Binds[name] {
		out[k] = v
	}
	return out
}

// BindAll installs every binding declared for name into kb.
func (c *Config) BindAll(kb *KeyBindings, name string) {
	for _, b := range c.chords[name] {
		kb.BindChord(b.chord, b.action)
	}
}
