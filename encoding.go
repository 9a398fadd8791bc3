package hybrid

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// MarshalJSON encodes the elements as a JSON array.
func (v Vector[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Slice())
}

// UnmarshalJSON replaces the contents with the decoded array. The prior
// contents are kept when decoding or growth fails.
func (v *Vector[T]) UnmarshalJSON(data []byte) error {
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("hybrid: json unmarshal: %w", err)
	}
	return v.replace(items)
}

// MarshalYAML encodes the elements as a YAML sequence.
func (v Vector[T]) MarshalYAML() (any, error) {
	return v.Slice(), nil
}

// UnmarshalYAML replaces the contents with the decoded sequence. The prior
// contents are kept when decoding or growth fails.
func (v *Vector[T]) UnmarshalYAML(node *yaml.Node) error {
	var items []T
	if err := node.Decode(&items); err != nil {
		return fmt.Errorf("hybrid: yaml unmarshal: %w", err)
	}
	return v.replace(items)
}

func (v *Vector[T]) replace(items []T) error {
	cfg := v.cfg
	cfg.observers = nil
	next := &Vector[T]{n: v.inlineCap(), cfg: cfg}
	for _, item := range items {
		if err := next.Append(item); err != nil {
			return err
		}
	}
	v.Release()
	v.take(next)
	if v.Mode() == Heap {
		v.notify(transition{kind: Promote, from: Inline, previous: v.inlineCap()})
	}
	return nil
}
