package output

import (
	"fmt"
	"io"

	"github.com/razeghi71/ask/engine"
	"gopkg.in/yaml.v3"
)

// YAMLFormatter outputs results as a YAML sequence of mappings.
type YAMLFormatter struct {
	writer io.Writer
}

// NewYAMLFormatter creates a new YAML formatter
func NewYAMLFormatter(w io.Writer) *YAMLFormatter {
	return &YAMLFormatter{writer: w}
}

// SetOutput sets the output writer
func (y *YAMLFormatter) SetOutput(w io.Writer) {
	y.writer = w
}

// Format writes the rows. Mapping keys keep the column order, which a Go
// map would lose, so the document is built from nodes.
func (y *YAMLFormatter) Format(r *engine.Result) error {
	doc := &yaml.Node{Kind: yaml.SequenceNode}
	if len(r.Table.Rows) == 0 {
		doc.Style = yaml.FlowStyle
	}

	for _, row := range r.Table.Rows {
		m := &yaml.Node{Kind: yaml.MappingNode}
		for c, col := range r.Table.Columns {
			key := &yaml.Node{Kind: yaml.ScalarNode, Value: col}
			val := &yaml.Node{}
			if err := val.Encode(row.Values[c].Native()); err != nil {
				return fmt.Errorf("failed to encode value of %s: %w", col, err)
			}
			m.Content = append(m.Content, key, val)
		}
		doc.Content = append(doc.Content, m)
	}

	enc := yaml.NewEncoder(y.writer)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to write YAML: %w", err)
	}
	return enc.Close()
}
