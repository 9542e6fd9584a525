package parser

import (
	"gopkg.in/yaml.v3"
)

// yamlRunbook is the intermediate structure for decoding runbook YAML.
// It matches the document shape before transformation to the AST.
type yamlRunbook struct {
	Name        string                 `yaml:"name"`
	Version     string                 `yaml:"version"`
	Description string                 `yaml:"description"`
	Tags        []string               `yaml:"tags"`
	Vars        map[string]interface{} `yaml:"vars"`
	Plays       []yamlPlay             `yaml:"plays"`
}

// yamlPlay is the intermediate play structure.
type yamlPlay struct {
	Name     string     `yaml:"name"`
	Schedule string     `yaml:"schedule"`
	Serial   string     `yaml:"serial"`
	Tags     []string   `yaml:"tags"`
	Tasks    []yamlTask `yaml:"tasks"`
}

// yamlTask is the intermediate task structure.
type yamlTask struct {
	Name   string                 `yaml:"name"`
	Action string                 `yaml:"action"`
	Args   map[string]interface{} `yaml:"args"`
	Tags   []string               `yaml:"tags"`
}

// mappingValue returns the value node for a key in a mapping node, or
// nil if the key is absent. Mapping nodes store keys and values as
// alternating children.
func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// documentRoot unwraps a document node to its single content node.
func documentRoot(node *yaml.Node) *yaml.Node {
	if node != nil && node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		return node.Content[0]
	}
	return node
}
