package cli

import (
	"errors"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/minilang/log"
)

// loadYAML is a [kong.ConfigurationLoader] for YAML configuration files, such
// as the one written by the init command:
//
//	kong.Configuration(loadYAML, "/path/to/config.yaml")
//
// Keys name flags with either hyphens or underscores. Nested mappings are
// joined to their parent key with a hyphen, so both of these set
// --log-level:
//
//	log-level: debug
//
//	log:
//	  level: debug
//
// Command-line flags override config file values. A file that is empty or
// not valid YAML is ignored with a warning.
func loadYAML(r io.Reader) (kong.Resolver, error) {
	var doc map[string]any

	err := yaml.NewDecoder(r).Decode(&doc)
	if err != nil {
		if !errors.Is(err, io.EOF) {
			log.Warn("ignoring configuration file", slog.String("error", err.Error()))
		}

		return config{}, nil
	}

	cfg := config{}
	cfg.flatten("", doc)

	return cfg, nil
}

// config implements [kong.Resolver] for flattened configuration values.
type config map[string]any

// flatten stores every leaf of m in c under its hyphen-joined path.
func (c config) flatten(prefix string, m map[string]any) {
	for key, val := range m {
		if prefix != "" {
			key = prefix + "-" + key
		}

		key = strings.ReplaceAll(key, "_", "-")

		if sub, ok := val.(map[string]any); ok {
			c.flatten(key, sub)

			continue
		}

		c[key] = flagValue(val)
	}
}

// flagValue converts a decoded YAML value to a form Kong's mappers accept.
// Kong parses numbers from their string form.
func flagValue(val any) any {
	switch v := val.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		list := make([]any, len(v))
		for i, e := range v {
			list[i] = flagValue(e)
		}

		return list
	default:
		return v
	}
}

// Validate implements [kong.Resolver]. Keys that name no flag are reported
// as warnings.
func (c config) Validate(app *kong.Application) error {
	var names []string

	nodes := []*kong.Node{app.Node}
	for len(nodes) > 0 {
		n := nodes[0]
		nodes = append(nodes[1:], n.Children...)

		for _, flag := range n.Flags {
			names = append(names, flag.Name)
		}
	}

	for key := range c {
		if !slices.Contains(names, key) {
			log.Warn("unknown configuration key", slog.String("key", key))
		}
	}

	return nil
}

// Resolve implements [kong.Resolver].
func (c config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := c[flag.Name]; ok {
		return value, nil
	}

	// Not found; let Kong use the default.
	return nil, nil
}
