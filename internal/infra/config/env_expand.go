package config

import (
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"apidir/internal/domain"
)

// expandEnv replaces $VAR and ${VAR} in string values of a YAML document and
// reports the variables that were not set.
func expandEnv(raw []byte) ([]byte, []string, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return nil, nil, domain.E(domain.CodeInvalidArgument, "load config", "parse config", err)
	}
	if root.Kind == 0 {
		return raw, nil, nil
	}

	missing := make(map[string]struct{})
	walk(&root, func(node *yaml.Node) {
		if node.Tag != "" && node.Tag != "!!str" {
			return
		}
		if !strings.Contains(node.Value, "$") {
			return
		}
		node.Value = os.Expand(node.Value, func(key string) string {
			if value, ok := os.LookupEnv(key); ok {
				return value
			}
			missing[key] = struct{}{}
			return ""
		})
	})

	expanded, err := yaml.Marshal(&root)
	if err != nil {
		return nil, nil, domain.E(domain.CodeInternal, "load config", "encode expanded config", err)
	}

	names := make([]string, 0, len(missing))
	for name := range missing {
		names = append(names, name)
	}
	sort.Strings(names)
	return expanded, names, nil
}

func walk(node *yaml.Node, visit func(*yaml.Node)) {
	switch node.Kind {
	case yaml.DocumentNode, yaml.SequenceNode:
		for _, child := range node.Content {
			walk(child, visit)
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			walk(node.Content[i+1], visit)
		}
	case yaml.ScalarNode:
		visit(node)
	}
}
