package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/releasedesk/internal/log"
)

// SaveUI writes the ui section to the config file, leaving every other
// section, and its comments, untouched.
func SaveUI(configPath string, ui UIConfig) error {
	if err := ValidateUI(ui); err != nil {
		return err
	}
	if err := replaceSection(configPath, "ui", buildUINode(ui)); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to save ui settings", err, "path", configPath)
		return err
	}
	log.Debug(log.CatConfig, "Saved ui settings", "path", configPath,
		"show_status_bar", ui.ShowStatusBar, "show_details", ui.ShowDetails)
	return nil
}

// replaceSection swaps the value of a top-level key, appending the key when
// it is missing, and writes the file atomically.
func replaceSection(configPath, key string, value *yaml.Node) error {
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

	if doc.Kind == 0 || len(doc.Content) == 0 {
		doc = yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode}},
		}
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("parsing config: top level is not a mapping")
	}

	found := false
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == key {
			root.Content[i+1] = value
			found = true
			break
		}
	}
	if !found {
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: key},
			value,
		)
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	return writeAtomic(configPath, buf.Bytes())
}

// writeAtomic writes data to a temp file in the target directory, then
// renames it over path.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".releasedesk.yaml.tmp.*")
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

func buildUINode(ui UIConfig) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}
	node.Content = append(node.Content,
		scalar("show_status_bar"), boolNode(ui.ShowStatusBar),
		scalar("show_details"), boolNode(ui.ShowDetails),
	)
	if ui.DateFormat != "" {
		node.Content = append(node.Content,
			scalar("date_format"), &yaml.Node{Kind: yaml.ScalarNode, Value: ui.DateFormat, Style: yaml.DoubleQuotedStyle},
		)
	}
	if ui.MarkdownStyle != "" {
		node.Content = append(node.Content, scalar("markdown_style"), scalar(ui.MarkdownStyle))
	}
	return node
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: v}
}

func boolNode(b bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(b)}
}
