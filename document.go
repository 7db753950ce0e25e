package oasgen

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is a parsed interface description. Mapping keys keep their source
// order, which decides the order components are registered and routes are
// generated in.
type Document struct {
	root *Node
}

// Node is a position in a parsed document. A nil *Node stands for an absent
// value; every accessor is safe to call on it.
type Node struct {
	raw  *yaml.Node
	path string
}

// Pair is one key/value entry of a mapping node.
type Pair struct {
	Key   string
	Value *Node
}

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	// #nosec G304 - path is supplied by the user on the command line
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document %s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a JSON or YAML document.
func Parse(data []byte) (*Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("empty document")
	}

	var root *yaml.Node
	var err error
	if trimmed[0] == '{' {
		root, err = decodeJSON(data)
	} else {
		root, err = decodeYAML(data)
	}
	if err != nil {
		return nil, err
	}
	if root.Kind != yaml.MappingNode {
		return nil, errors.New("document root must be an object")
	}
	return &Document{root: &Node{raw: root}}, nil
}

// Root returns the top-level object.
func (d *Document) Root() *Node {
	return d.root
}

// Components returns components.schemas in declaration order.
func (d *Document) Components() []Pair {
	return d.root.Lookup("components", "schemas").Pairs()
}

// Paths returns the path items in declaration order.
func (d *Document) Paths() []Pair {
	return d.root.Get("paths").Pairs()
}

// BaseURL returns servers[0].url, or an empty string when no server is declared.
func (d *Document) BaseURL() string {
	servers := d.root.Get("servers").Items()
	if len(servers) == 0 {
		return ""
	}
	return servers[0].Get("url").String()
}

// Path is the JSON pointer of the node within its document.
func (n *Node) Path() string {
	if n == nil {
		return ""
	}
	if n.path == "" {
		return "/"
	}
	return n.path
}

// Line is the 1-based source line of the node, or 0 when unknown.
func (n *Node) Line() int {
	if n == nil {
		return 0
	}
	return n.raw.Line
}

// Column is the 1-based source column of the node, or 0 when unknown.
func (n *Node) Column() int {
	if n == nil {
		return 0
	}
	return n.raw.Column
}

func (n *Node) IsMap() bool {
	return n != nil && n.raw.Kind == yaml.MappingNode
}

func (n *Node) IsSeq() bool {
	return n != nil && n.raw.Kind == yaml.SequenceNode
}

func (n *Node) IsScalar() bool {
	return n != nil && n.raw.Kind == yaml.ScalarNode
}

// Has reports whether the mapping node declares key.
func (n *Node) Has(key string) bool {
	return n.Get(key) != nil
}

// Get returns the value stored under key, or nil.
func (n *Node) Get(key string) *Node {
	if !n.IsMap() {
		return nil
	}
	content := n.raw.Content
	for i := 0; i+1 < len(content); i += 2 {
		if content[i].Value == key {
			return n.child(key, content[i+1])
		}
	}
	return nil
}

// Lookup follows keys through nested mappings.
func (n *Node) Lookup(keys ...string) *Node {
	cur := n
	for _, key := range keys {
		cur = cur.Get(key)
	}
	return cur
}

// String returns the scalar value, or an empty string for other nodes.
func (n *Node) String() string {
	if !n.IsScalar() {
		return ""
	}
	return n.raw.Value
}

// Pairs returns the entries of a mapping node in source order.
func (n *Node) Pairs() []Pair {
	if !n.IsMap() {
		return nil
	}
	content := n.raw.Content
	pairs := make([]Pair, 0, len(content)/2)
	for i := 0; i+1 < len(content); i += 2 {
		key := content[i].Value
		pairs = append(pairs, Pair{Key: key, Value: n.child(key, content[i+1])})
	}
	return pairs
}

// Items returns the elements of a sequence node.
func (n *Node) Items() []*Node {
	if !n.IsSeq() {
		return nil
	}
	items := make([]*Node, 0, len(n.raw.Content))
	for i, item := range n.raw.Content {
		items = append(items, n.child(fmt.Sprint(i), item))
	}
	return items
}

// Value converts the node into plain Go values: map[string]any, []any and scalars.
func (n *Node) Value() (any, error) {
	if n == nil {
		return nil, nil
	}
	switch n.raw.Kind {
	case yaml.MappingNode:
		out := make(map[string]any, len(n.raw.Content)/2)
		for _, pair := range n.Pairs() {
			v, err := pair.Value.Value()
			if err != nil {
				return nil, err
			}
			out[pair.Key] = v
		}
		return out, nil
	case yaml.SequenceNode:
		items := n.Items()
		out := make([]any, 0, len(items))
		for _, item := range items {
			v, err := item.Value()
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	default:
		var v any
		if err := n.raw.Decode(&v); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", n.Path(), err)
		}
		return v, nil
	}
}

func (n *Node) child(key string, raw *yaml.Node) *Node {
	for raw.Kind == yaml.AliasNode && raw.Alias != nil {
		raw = raw.Alias
	}
	return &Node{raw: raw, path: n.path + "/" + escapePointer(key)}
}

func escapePointer(key string) string {
	key = strings.ReplaceAll(key, "~", "~0")
	return strings.ReplaceAll(key, "/", "~1")
}

func decodeYAML(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode yaml: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New("empty document")
	}
	return doc.Content[0], nil
}

// decodeJSON builds the node tree from the JSON token stream so object keys
// keep their order and nodes carry line/column positions.
func decodeJSON(src []byte) (*yaml.Node, error) {
	d := &jsonDecoder{
		dec:   json.NewDecoder(bytes.NewReader(src)),
		src:   src,
		lines: newLineIndex(src),
	}
	d.dec.UseNumber()

	root, err := d.value()
	if err != nil {
		return nil, fmt.Errorf("failed to decode json: %w", err)
	}
	if _, err := d.dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("failed to decode json: trailing data after document")
	}
	return root, nil
}

type jsonDecoder struct {
	dec   *json.Decoder
	src   []byte
	lines lineIndex
}

// next reads a token together with the position of its first byte.
func (d *jsonDecoder) next() (json.Token, int, int, error) {
	offset := d.dec.InputOffset()
	for offset < int64(len(d.src)) && isJSONSeparator(d.src[offset]) {
		offset++
	}
	tok, err := d.dec.Token()
	if err != nil {
		return nil, 0, 0, err
	}
	line, col := d.lines.position(offset)
	return tok, line, col, nil
}

func (d *jsonDecoder) value() (*yaml.Node, error) {
	tok, line, col, err := d.next()
	if err != nil {
		return nil, err
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Line: line, Column: col}
			seen := make(map[string]bool)
			for d.dec.More() {
				keyTok, kLine, kCol, err := d.next()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("unexpected object key %v", keyTok)
				}
				if seen[key] {
					return nil, fmt.Errorf("duplicate key %q at line %d", key, kLine)
				}
				seen[key] = true
				value, err := d.value()
				if err != nil {
					return nil, err
				}
				node.Content = append(node.Content,
					&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key, Line: kLine, Column: kCol},
					value)
			}
			if _, err := d.dec.Token(); err != nil {
				return nil, err
			}
			return node, nil
		case '[':
			node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Line: line, Column: col}
			for d.dec.More() {
				item, err := d.value()
				if err != nil {
					return nil, err
				}
				node.Content = append(node.Content, item)
			}
			if _, err := d.dec.Token(); err != nil {
				return nil, err
			}
			return node, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %v", v)
		}
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v, Line: line, Column: col}, nil
	case json.Number:
		tag := "!!int"
		if strings.ContainsAny(v.String(), ".eE") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.String(), Line: line, Column: col}, nil
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: fmt.Sprint(v), Line: line, Column: col}, nil
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null", Line: line, Column: col}, nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func isJSONSeparator(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', ',', ':':
		return true
	}
	return false
}

type lineIndex []int64

func newLineIndex(src []byte) lineIndex {
	idx := lineIndex{0}
	for i, b := range src {
		if b == '\n' {
			idx = append(idx, int64(i+1))
		}
	}
	return idx
}

func (idx lineIndex) position(offset int64) (line, column int) {
	lo, hi := 0, len(idx)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if idx[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo + 1, int(offset-idx[lo]) + 1
}
