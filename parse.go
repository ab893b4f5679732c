// FILE: lixenwraith/tomldir/parse.go
package tomldir

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format identifies the syntax of a configuration document.
type Format string

const (
	// FormatAuto detects the format from the file extension, then from content
	FormatAuto Format = "auto"
	// FormatTOML is the default format
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat resolves a format name. Common aliases ("yml", "tml") are accepted.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "", "toml", "tml":
		return FormatTOML, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "auto":
		return FormatAuto, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// parseDocument hands data to the parser for format and converts the result
// into a Value tree whose tables are created by factory in document order.
func parseDocument(format Format, data []byte, factory StoreFactory) (Value, error) {
	var (
		root Value
		err  error
	)
	switch format {
	case FormatTOML:
		root, err = parseTOML(data, factory)
	case FormatJSON:
		root, err = parseJSON(data, factory)
	case FormatYAML:
		root, err = parseYAML(data, factory)
	default:
		return Value{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return Value{}, err
	}
	if root.Kind() != KindTable {
		return Value{}, rootNotTableError(format, root.Kind().String())
	}
	return root, nil
}

// -- TOML

// tomlBuilder rebuilds document order, which map decoding discards, from
// the ordered key list in toml.MetaData.
type tomlBuilder struct {
	factory StoreFactory
	rank    map[string]int // joined key path -> first position in the document
}

func parseTOML(data []byte, factory StoreFactory) (Value, error) {
	raw := make(map[string]any)
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return Value{}, syntaxError(FormatTOML, err)
	}

	b := &tomlBuilder{factory: factory, rank: make(map[string]int)}
	for i, key := range md.Keys() {
		joined := strings.Join(key, "\x00")
		if _, seen := b.rank[joined]; !seen {
			b.rank[joined] = i
		}
	}
	return b.table(raw, nil)
}

func (b *tomlBuilder) table(m map[string]any, path []string) (Value, error) {
	keys := slices.Collect(maps.Keys(m))
	prefix := strings.Join(path, "\x00")
	if len(path) > 0 {
		prefix += "\x00"
	}
	slices.SortFunc(keys, func(x, y string) int {
		rx, okx := b.rank[prefix+x]
		ry, oky := b.rank[prefix+y]
		switch {
		case okx && oky:
			return rx - ry
		case okx:
			return -1
		case oky:
			return 1
		}
		return strings.Compare(x, y)
	})

	store := b.factory()
	for _, key := range keys {
		// Array elements share the path of their array, matching MetaData keys
		v, err := b.value(m[key], append(path[:len(path):len(path)], key))
		if err != nil {
			return Value{}, err
		}
		store.Insert(key, v)
	}
	return TableValue(store), nil
}

func (b *tomlBuilder) value(raw any, path []string) (Value, error) {
	switch x := raw.(type) {
	case map[string]any:
		return b.table(x, path)
	case []map[string]any:
		elems := make([]Value, 0, len(x))
		for _, m := range x {
			v, err := b.table(m, path)
			if err != nil {
				return Value{}, err
			}
			elems = append(elems, v)
		}
		return ArrayValue(elems), nil
	case []any:
		elems := make([]Value, 0, len(x))
		for _, e := range x {
			v, err := b.value(e, path)
			if err != nil {
				return Value{}, err
			}
			elems = append(elems, v)
		}
		return ArrayValue(elems), nil
	case string:
		return StringValue(x), nil
	case int64:
		return IntValue(x), nil
	case float64:
		return FloatValue(x), nil
	case bool:
		return BoolValue(x), nil
	case time.Time:
		return TimeValue(x), nil
	}
	return Value{}, syntaxError(FormatTOML, fmt.Errorf("unexpected %T at %q", raw, strings.Join(path, ".")))
}

// -- JSON

// jsonParser walks the token stream so object members keep document order.
type jsonParser struct {
	dec     *json.Decoder
	factory StoreFactory
}

func parseJSON(data []byte, factory StoreFactory) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber() // Preserve integer/float distinction
	p := &jsonParser{dec: dec, factory: factory}

	root, err := p.value()
	if err != nil {
		return Value{}, syntaxError(FormatJSON, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Value{}, syntaxError(FormatJSON, errors.New("unexpected data after top-level value"))
	}
	return root, nil
}

func (p *jsonParser) value() (Value, error) {
	tok, err := p.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Value{}, io.ErrUnexpectedEOF
		}
		return Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return p.object()
		case '[':
			return p.array()
		}
		return Value{}, fmt.Errorf("unexpected delimiter %q", t)
	case string:
		return StringValue(t), nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return IntValue(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("invalid number %s: %w", t, err)
		}
		return FloatValue(f), nil
	case bool:
		return BoolValue(t), nil
	case nil:
		return NullValue(), nil
	}
	return Value{}, fmt.Errorf("unexpected token %v", tok)
}

func (p *jsonParser) object() (Value, error) {
	store := p.factory()
	for p.dec.More() {
		tok, err := p.dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, fmt.Errorf("object key is %T", tok)
		}
		v, err := p.value()
		if err != nil {
			return Value{}, err
		}
		store.Insert(key, v)
	}
	if _, err := p.dec.Token(); err != nil { // closing '}'
		return Value{}, err
	}
	return TableValue(store), nil
}

func (p *jsonParser) array() (Value, error) {
	var elems []Value
	for p.dec.More() {
		v, err := p.value()
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, v)
	}
	if _, err := p.dec.Token(); err != nil { // closing ']'
		return Value{}, err
	}
	return ArrayValue(elems), nil
}

// -- YAML

type yamlParser struct {
	factory   StoreFactory
	expanding map[*yaml.Node]bool // anchors whose alias is being expanded
}

func parseYAML(data []byte, factory StoreFactory) (Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Value{}, syntaxError(FormatYAML, err)
	}

	// An empty document is an empty table
	if doc.Kind == 0 || (doc.Kind == yaml.DocumentNode && len(doc.Content) == 0) {
		return TableValue(factory()), nil
	}

	// Decoding runs yaml.v3's alias checks: self-referencing anchors and
	// excessive aliasing are rejected before the tree is expanded.
	if err := doc.Decode(new(any)); err != nil {
		return Value{}, syntaxError(FormatYAML, err)
	}

	root := &doc
	if doc.Kind == yaml.DocumentNode {
		root = doc.Content[0]
	}
	p := &yamlParser{factory: factory, expanding: make(map[*yaml.Node]bool)}
	v, err := p.node(root)
	if err != nil {
		return Value{}, syntaxError(FormatYAML, err)
	}
	return v, nil
}

func (p *yamlParser) node(n *yaml.Node) (Value, error) {
	if n.Kind == yaml.AliasNode {
		target := n.Alias
		if p.expanding[target] {
			return Value{}, fmt.Errorf("line %d: anchor %q value contains itself", n.Line, n.Value)
		}
		p.expanding[target] = true
		defer delete(p.expanding, target)
		return p.node(target)
	}

	switch n.Kind {
	case yaml.MappingNode:
		return p.mapping(n)
	case yaml.SequenceNode:
		elems := make([]Value, 0, len(n.Content))
		for _, child := range n.Content {
			v, err := p.node(child)
			if err != nil {
				return Value{}, err
			}
			elems = append(elems, v)
		}
		return ArrayValue(elems), nil
	case yaml.ScalarNode:
		return p.scalar(n)
	}
	return Value{}, fmt.Errorf("line %d: unsupported node kind %d", n.Line, n.Kind)
}

func (p *yamlParser) mapping(n *yaml.Node) (Value, error) {
	store := p.factory()
	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode, valNode := n.Content[i], n.Content[i+1]

		if keyNode.ShortTag() == "!!merge" {
			if err := p.merge(store, valNode); err != nil {
				return Value{}, err
			}
			continue
		}
		if keyNode.Kind != yaml.ScalarNode {
			return Value{}, fmt.Errorf("line %d: mapping key must be a scalar", keyNode.Line)
		}

		v, err := p.node(valNode)
		if err != nil {
			return Value{}, err
		}
		store.Insert(keyNode.Value, v)
	}
	return TableValue(store), nil
}

// merge applies a "<<" merge key: entries of the referenced mapping(s) are
// added unless the enclosing mapping defines them explicitly.
func (p *yamlParser) merge(store Store, n *yaml.Node) error {
	target := n
	if target.Kind == yaml.AliasNode {
		target = target.Alias
	}
	sources := []*yaml.Node{n}
	if target.Kind == yaml.SequenceNode {
		sources = target.Content
	}

	for _, src := range sources {
		v, err := p.node(src)
		if err != nil {
			return err
		}
		tbl, ok := v.AsTable()
		if !ok {
			return fmt.Errorf("line %d: merge value must be a mapping", src.Line)
		}
		for key, mv := range tbl.All() {
			if _, exists := store.Get(key); !exists {
				store.Insert(key, mv)
			}
		}
	}
	return nil
}

func (p *yamlParser) scalar(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return NullValue(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return Value{}, err
		}
		return BoolValue(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			// Out of int64 range
			var f float64
			if ferr := n.Decode(&f); ferr != nil {
				return Value{}, err
			}
			return FloatValue(f), nil
		}
		return IntValue(i), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return Value{}, err
		}
		return FloatValue(f), nil
	case "!!timestamp":
		var t time.Time
		if err := n.Decode(&t); err != nil {
			return Value{}, err
		}
		return TimeValue(t), nil
	}
	return StringValue(n.Value), nil
}
