package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Keys lists every setting by its dotted name, sorted.
func Keys() []string {
	v := viper.New()
	SetDefaults(v)
	keys := v.AllKeys()
	slices.Sort(keys)
	return keys
}

// SetValue writes one setting into the config file at configPath, creating
// the file if needed. value is read as YAML, so "true", "2s" and
// "[normal, insert]" keep their types. Comments and the order of other keys
// are preserved. The file is left untouched if the result does not validate.
func SetValue(configPath, key, value string) error {
	key = strings.ToLower(key)
	if !slices.Contains(Keys(), key) {
		return fmt.Errorf("unknown setting %q", key)
	}

	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}
	if doc.Kind == 0 {
		doc = yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode}},
		}
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("parsing config: top level is not a mapping")
	}

	valueNode, err := parseValue(value)
	if err != nil {
		return fmt.Errorf("parsing value for %s: %w", key, err)
	}
	setPath(root, strings.Split(key, "."), valueNode)

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	if err := validateBytes(buf.Bytes()); err != nil {
		return err
	}
	return writeAtomic(configPath, buf.Bytes())
}

func parseValue(value string) (*yaml.Node, error) {
	var n yaml.Node
	if err := yaml.Unmarshal([]byte(value), &n); err != nil {
		return nil, err
	}
	if n.Kind == 0 || len(n.Content) == 0 {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}, nil
	}
	v := n.Content[0]
	v.HeadComment, v.LineComment, v.FootComment = "", "", ""
	return v, nil
}

// setPath replaces the value at path below m, adding mappings as needed.
// A replaced scalar keeps its line comment.
func setPath(m *yaml.Node, path []string, value *yaml.Node) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value != path[0] {
			continue
		}
		existing := m.Content[i+1]
		if len(path) == 1 {
			if value.LineComment == "" {
				value.LineComment = existing.LineComment
			}
			m.Content[i+1] = value
			return
		}
		if existing.Kind != yaml.MappingNode {
			existing = &yaml.Node{Kind: yaml.MappingNode}
			m.Content[i+1] = existing
		}
		setPath(existing, path[1:], value)
		return
	}

	keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: path[0]}
	if len(path) == 1 {
		m.Content = append(m.Content, keyNode, value)
		return
	}
	child := &yaml.Node{Kind: yaml.MappingNode}
	m.Content = append(m.Content, keyNode, child)
	setPath(child, path[1:], value)
}

func validateBytes(data []byte) error {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	return cfg.Validate()
}

// writeAtomic writes to a temp file in the same directory, then renames.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".vimdoc.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// Render returns cfg as YAML, for "vimdoc config show".
func Render(cfg Config) (string, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(toYAML(cfg)); err != nil {
		return "", fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()
	return buf.String(), nil
}

// toYAML mirrors Config with yaml tags. Durations are written as strings.
func toYAML(cfg Config) map[string]any {
	e := cfg.Editor
	modes := e.Modes
	if modes == nil {
		modes = []string{}
	}
	return map[string]any{
		"editor": map[string]any{
			"key_timeout":        e.KeyTimeout.String(),
			"modes":              modes,
			"history_limit":      e.HistoryLimit,
			"undo_per_keystroke": e.UndoPerKeystroke,
			"insert_escape":      e.InsertEscape,
			"search": map[string]any{
				"literal":     e.Search.Literal,
				"ignore_case": e.Search.IgnoreCase,
				"smart_case":  e.Search.SmartCase,
				"no_cache":    e.Search.NoCache,
			},
			"clipboard":  e.Clipboard,
			"undo_file":  e.UndoFile,
			"undo_dir":   e.UndoDir,
			"watch_file": e.WatchFile,
		},
		"ui": map[string]any{
			"show_status_bar": cfg.UI.ShowStatusBar,
			"show_help":       cfg.UI.ShowHelp,
			"line_numbers":    cfg.UI.LineNumbers,
			"markdown_style":  cfg.UI.MarkdownStyle,
		},
		"tracing": map[string]any{
			"enabled":       cfg.Tracing.Enabled,
			"exporter":      cfg.Tracing.Exporter,
			"file_path":     cfg.Tracing.FilePath,
			"otlp_endpoint": cfg.Tracing.OTLPEndpoint,
			"sample_rate":   cfg.Tracing.SampleRate,
		},
	}
}
