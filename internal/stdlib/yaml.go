package stdlib

import (
	"fmt"
	"math"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/aurora/internal/evaluator"
)

func loadYAML(r *registry) {
	r.fn("yaml_parse", 1, func(_ *evaluator.Context, args []evaluator.Value) (evaluator.Value, error) {
		text, err := stringArg("yaml_parse", args, 0)
		if err != nil {
			return nil, err
		}
		v, err := yamlDecode(text)
		if err != nil {
			return nil, failure("yaml_parse", err)
		}
		return v, nil
	})
	r.fn("yaml_dump", 1, func(_ *evaluator.Context, args []evaluator.Value) (evaluator.Value, error) {
		text, err := yamlEncode(args[0])
		if err != nil {
			return nil, failure("yaml_dump", err)
		}
		return str(text), nil
	})
}

// yamlDecode parses a YAML document. It walks the node tree rather than
// decoding into Go maps so mapping order survives into the result.
func yamlDecode(text string) (evaluator.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 {
		return evaluator.UNIT, nil
	}
	return fromYAML(&doc)
}

func fromYAML(n *yaml.Node) (evaluator.Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return evaluator.UNIT, nil
		}
		return fromYAML(n.Content[0])
	case yaml.AliasNode:
		return fromYAML(n.Alias)
	case yaml.SequenceNode:
		out := evaluator.NewList()
		for _, c := range n.Content {
			v, err := fromYAML(c)
			if err != nil {
				return nil, err
			}
			out.Elements = append(out.Elements, v)
		}
		return out, nil
	case yaml.MappingNode:
		out := evaluator.NewMap()
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, err := fromYAML(n.Content[i])
			if err != nil {
				return nil, err
			}
			v, err := fromYAML(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			out.Set(k, v)
		}
		return out, nil
	case yaml.ScalarNode:
		var raw interface{}
		if err := n.Decode(&raw); err != nil {
			return nil, err
		}
		return fromScalar(raw)
	}
	return nil, fmt.Errorf("line %d: unsupported YAML node", n.Line)
}

func fromScalar(raw interface{}) (evaluator.Value, error) {
	switch v := raw.(type) {
	case nil:
		return evaluator.UNIT, nil
	case bool:
		return evaluator.NativeBool(v), nil
	case int:
		return integer(int64(v)), nil
	case int64:
		return integer(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return float(float64(v)), nil
		}
		return integer(int64(v)), nil
	case float64:
		return float(v), nil
	case string:
		return str(v), nil
	}
	return str(fmt.Sprint(raw)), nil
}

// yamlEncode renders v as a YAML document. Callables cannot be encoded.
func yamlEncode(v evaluator.Value) (string, error) {
	n, err := toYAML(v, 0)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(n); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return b.String(), nil
}

const maxYAMLDepth = 64

func toYAML(v evaluator.Value, depth int) (*yaml.Node, error) {
	if depth > maxYAMLDepth {
		return nil, fmt.Errorf("value nested deeper than %d levels", maxYAMLDepth)
	}
	switch val := v.(type) {
	case *evaluator.List:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range val.Elements {
			c, err := toYAML(e, depth+1)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, c)
		}
		return n, nil
	case *evaluator.Map:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		values := val.Values()
		for i, k := range val.Keys() {
			kn, err := toYAML(k, depth+1)
			if err != nil {
				return nil, err
			}
			vn, err := toYAML(values[i], depth+1)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, kn, vn)
		}
		return n, nil
	case *evaluator.Integer:
		return scalarNode(val.Value)
	case *evaluator.Float:
		return scalarNode(val.Value)
	case *evaluator.String:
		return scalarNode(val.Value)
	case *evaluator.Boolean:
		return scalarNode(val.Value)
	case *evaluator.Unit:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	}
	return nil, fmt.Errorf("cannot encode value of kind %s", v.Type())
}

func scalarNode(v interface{}) (*yaml.Node, error) {
	n := &yaml.Node{}
	if err := n.Encode(v); err != nil {
		return nil, err
	}
	return n, nil
}
