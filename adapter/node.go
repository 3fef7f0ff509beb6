package adapter

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/schemamap/tree"
)

// maxNodeDepth bounds recursion over alias-heavy or hostile documents.
const maxNodeDepth = 1000

// fromNode converts a decoded yaml.Node into a tree value, keeping mapping
// key order.
func fromNode(node *yaml.Node, depth int) (any, error) {
	if node == nil {
		return nil, nil
	}
	if depth > maxNodeDepth {
		return nil, fmt.Errorf("document nesting exceeds %d levels", maxNodeDepth)
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return fromNode(node.Content[0], depth+1)

	case yaml.MappingNode:
		obj := tree.NewObject()
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode, valNode := node.Content[i], node.Content[i+1]
			val, err := fromNode(valNode, depth+1)
			if err != nil {
				return nil, err
			}
			obj.Set(keyNode.Value, val)
		}
		return obj, nil

	case yaml.SequenceNode:
		items := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			val, err := fromNode(child, depth+1)
			if err != nil {
				return nil, err
			}
			items = append(items, val)
		}
		return items, nil

	case yaml.AliasNode:
		return fromNode(node.Alias, depth+1)

	default:
		return scalarValue(node)
	}
}

func scalarValue(node *yaml.Node) (any, error) {
	switch node.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, err
		}
		return b, nil
	case "!!int":
		var n int64
		if err := node.Decode(&n); err != nil {
			// Out-of-range integers degrade to float64, like encoding/json.
			var f float64
			if ferr := node.Decode(&f); ferr != nil {
				return nil, err
			}
			return f, nil
		}
		return n, nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return nil, err
		}
		return f, nil
	default:
		return node.Value, nil
	}
}

// toNode converts a tree value into a yaml.Node for ordered YAML output.
func toNode(v any) (*yaml.Node, error) {
	switch val := v.(type) {
	case *tree.Object:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for k, child := range val.All() {
			childNode, err := toNode(child)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, scalarNode("!!str", k), childNode)
		}
		return node, nil
	case []any:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, child := range val {
			childNode, err := toNode(child)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, childNode)
		}
		return node, nil
	case string:
		return scalarNode("!!str", val), nil
	case bool:
		return scalarNode("!!bool", strconv.FormatBool(val)), nil
	case int:
		return scalarNode("!!int", strconv.Itoa(val)), nil
	case int64:
		return scalarNode("!!int", strconv.FormatInt(val, 10)), nil
	case float64:
		return scalarNode("!!float", formatFloat(val)), nil
	case nil:
		return scalarNode("!!null", "null"), nil
	default:
		node := &yaml.Node{}
		if err := node.Encode(val); err != nil {
			return nil, err
		}
		return node, nil
	}
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

// formatFloat keeps a float recognizable as a float in YAML output.
func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	case math.IsNaN(f):
		return ".nan"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
