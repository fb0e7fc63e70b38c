// Package config provides configuration types, defaults, and persistence for longview.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// SaveVirt updates the virt section in the config file.
// This preserves comments and formatting in other sections by using yaml.Node.
func SaveVirt(configPath string, virt VirtConfig) error {
	return saveSection(configPath, "virt", buildVirtNode(virt))
}

// SaveUI updates the ui section in the config file.
func SaveUI(configPath string, ui UIConfig) error {
	return saveSection(configPath, "ui", buildUINode(ui))
}

// saveSection replaces one top-level mapping key in the config file,
// creating the file when it does not exist yet.
func saveSection(configPath, key string, value *yaml.Node) error {
	// Read existing file content
	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	// Parse into yaml.Node to preserve comments
	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	// Update or create the section
	if doc.Kind == 0 {
		// Empty or new file - create document structure
		doc = yaml.Node{
			Kind: yaml.DocumentNode,
			Content: []*yaml.Node{
				{
					Kind: yaml.MappingNode,
					Content: []*yaml.Node{
						{Kind: yaml.ScalarNode, Value: key},
						value,
					},
				},
			},
		}
	} else if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		root := doc.Content[0]
		if root.Kind == yaml.MappingNode {
			// Find and replace the key, or append it
			found := false
			for i := 0; i < len(root.Content)-1; i += 2 {
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
		}
	}

	// Marshal back to YAML
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	// Write atomically (write to temp, then rename)
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".longview.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(buf.Bytes()); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, configPath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	return nil
}

// buildVirtNode creates a yaml.Node representing the virt section.
func buildVirtNode(v VirtConfig) *yaml.Node {
	return mappingNode(
		entry{"default_item_height", "!!float", strconv.FormatFloat(v.DefaultItemHeight, 'g', -1, 64)},
		entry{"buffer_size", "!!int", strconv.Itoa(v.BufferSize)},
		entry{"mode", "!!str", v.Mode},
		entry{"block_size", "!!int", strconv.Itoa(v.BlockSize)},
		entry{"chunk_size", "!!int", strconv.Itoa(v.ChunkSize)},
		entry{"measure_debounce_ms", "!!int", strconv.Itoa(v.MeasureDebounceMS)},
		entry{"smooth_scroll", "!!bool", strconv.FormatBool(v.SmoothScroll)},
	)
}

// buildUINode creates a yaml.Node representing the ui section.
func buildUINode(ui UIConfig) *yaml.Node {
	return mappingNode(
		entry{"show_status_bar", "!!bool", strconv.FormatBool(ui.ShowStatusBar)},
		entry{"show_scrollbar", "!!bool", strconv.FormatBool(ui.ShowScrollbar)},
		entry{"debug", "!!bool", strconv.FormatBool(ui.Debug)},
	)
}

type entry struct {
	key   string
	tag   string
	value string
}

// mappingNode builds a flat mapping with explicitly tagged scalar values so
// booleans and numbers round-trip unquoted.
func mappingNode(entries ...entry) *yaml.Node {
	node := &yaml.Node{
		Kind:    yaml.MappingNode,
		Content: make([]*yaml.Node, 0, len(entries)*2),
	}
	for _, e := range entries {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: e.key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: e.tag, Value: e.value},
		)
	}
	return node
}
