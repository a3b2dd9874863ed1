package table

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"

	"JsonDB/jsonelem"
	"JsonDB/node"
)

// Snapshot line format, one node per line, LF terminated:
//
//	<depth><SEP><kind-int><SEP><key-or-NULL>[<SEP><value-kind-char><SEP><payload...>]
//
// Objects and object arrays write only the header; their children follow
// at depth+1. Value arrays write the element tag once, then every element
// separated by SEP. Lazy nodes write their raw json as a string payload.
// Every variable-width field is escaped so the separator and line breaks
// never appear unescaped inside a field.

// Compression selects the stream codec wrapped around the snapshot file.
type Compression int

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionSnappy
)

// Serialize writes the whole tree to path; compress selects gzip at its
// fastest level. The write is not atomic: a failure mid-way leaves a
// corrupt file.
func (t *Table) Serialize(path string, compress bool) error {
	c := CompressionNone
	if compress {
		c = CompressionGzip
	}
	return t.SerializeWith(path, c)
}

// SerializeWith writes the snapshot with an explicit compression codec.
func (t *Table) SerializeWith(path string, c Compression) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("serialize %s: %w", path, err)
	}
	var w io.Writer = f
	var finish func() error
	switch c {
	case CompressionGzip:
		zw, zerr := gzip.NewWriterLevel(f, gzip.BestSpeed)
		if zerr != nil {
			f.Close()
			return fmt.Errorf("serialize %s: %w", path, zerr)
		}
		w, finish = zw, zw.Close
	case CompressionSnappy:
		sw := snappy.NewBufferedWriter(f)
		w, finish = sw, sw.Close
	}

	bw := bufio.NewWriter(w)
	if err := t.writeNode(bw, t.root, 0); err != nil {
		f.Close()
		return fmt.Errorf("serialize %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("serialize %s: %w", path, err)
	}
	if finish != nil {
		if err := finish(); err != nil {
			f.Close()
			return fmt.Errorf("serialize %s: %w", path, err)
		}
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("serialize %s: %w", path, err)
	}
	return nil
}

// writeNode emits one line for n and recurses into container children,
// depth-first pre-order.
func (t *Table) writeNode(w *bufio.Writer, n *node.Node, depth int) error {
	sep := t.opts.Sep
	key := n.Key()
	if key == "" {
		key = t.opts.NullLiteral
	}
	w.WriteString(strconv.Itoa(depth))
	w.WriteByte(sep)
	w.WriteString(strconv.Itoa(int(n.Kind())))
	w.WriteByte(sep)
	w.WriteString(escapeField(key, sep))

	switch n.Kind() {
	case node.KindScalar:
		v := n.Value()
		w.WriteByte(sep)
		w.WriteByte(v.Kind().TagChar())
		w.WriteByte(sep)
		w.WriteString(escapeField(v.Text(t.opts), sep))
		w.WriteByte('\n')
	case node.KindValueArray:
		w.WriteByte(sep)
		w.WriteByte(n.ElemKind().TagChar())
		for i := 0; i < n.NumValues(); i++ {
			w.WriteByte(sep)
			w.WriteString(escapeField(n.ValueAt(i).Text(t.opts), sep))
		}
		w.WriteByte('\n')
	case node.KindLazyObject, node.KindLazyArray:
		w.WriteByte(sep)
		w.WriteByte(node.TagString)
		w.WriteByte(sep)
		w.WriteString(escapeField(n.RawText(), sep))
		w.WriteByte('\n')
	default: // object, object array: header only, children follow
		if _, err := w.WriteString("\n"); err != nil {
			return err
		}
		for i := 0; i < n.NumChildren(); i++ {
			if err := t.writeNode(w, n.Child(i), depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

// Load reads a snapshot written by Serialize; compress must match the
// writer's choice.
func (t *Table) Load(path string, compress bool) error {
	c := CompressionNone
	if compress {
		c = CompressionGzip
	}
	return t.LoadWith(path, c)
}

// LoadWith reads a snapshot with an explicit compression codec. The
// table's state is replaced only when the whole file parses; a malformed
// line aborts and discards the partial tree.
func (t *Table) LoadWith(path string, c Compression) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	switch c {
	case CompressionGzip:
		zr, zerr := gzip.NewReader(f)
		if zerr != nil {
			return fmt.Errorf("load %s: %w", path, zerr)
		}
		defer zr.Close()
		r = zr
	case CompressionSnappy:
		r = snappy.NewReader(f)
	}

	root, err := t.readTree(r)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}

	t.root = root
	t.tableNode = root.GetNode(t.name)
	t.main = make(map[string]*node.Node)
	t.renders.Clear()
	if t.tableNode != nil && t.tableNode.Kind() == node.KindObjectArray {
		for i := 0; i < t.tableNode.NumChildren(); i++ {
			doc := t.tableNode.Child(i)
			if id, ok := node.Get[string](doc, "_id"); ok && id != "" {
				t.main[id] = doc
			}
		}
	}
	return t.rebuildIndexes()
}

// readTree reconstructs the node tree line by line with a stack of open
// containers. The sort option is forced off while attaching so the file's
// order is preserved, then restored.
func (t *Table) readTree(r io.Reader) (*node.Node, error) {
	savedSort := t.opts.Sort
	t.opts.Sort = false
	defer func() { t.opts.Sort = savedSort }()

	sep := t.opts.Sep
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	type frame struct {
		n     *node.Node
		depth int
	}
	var stack []frame
	var root *node.Node
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, string(sep))
		if len(fields) < 3 {
			return nil, fmt.Errorf("line %d: too few fields", lineNo)
		}
		depth, err := strconv.Atoi(fields[0])
		if err != nil || depth < 0 {
			return nil, fmt.Errorf("line %d: bad depth %q", lineNo, fields[0])
		}
		kindInt, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: bad kind %q", lineNo, fields[1])
		}
		key, err := unescapeField(fields[2], sep)
		if err != nil {
			return nil, fmt.Errorf("line %d: key: %w", lineNo, err)
		}
		if key == t.opts.NullLiteral {
			key = ""
		}

		n, err := t.buildNode(node.Kind(kindInt), key, fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		for len(stack) > 0 && stack[len(stack)-1].depth >= depth {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			if root != nil {
				return nil, fmt.Errorf("line %d: multiple roots", lineNo)
			}
			root = n
		} else {
			if err := node.Add(stack[len(stack)-1].n, n); err != nil {
				return nil, fmt.Errorf("line %d: attach: %w", lineNo, err)
			}
		}
		if k := n.Kind(); k == node.KindObject || k == node.KindObjectArray {
			stack = append(stack, frame{n, depth})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if root == nil {
		return nil, fmt.Errorf("empty snapshot")
	}
	return root, nil
}

// buildNode constructs one node from a parsed snapshot line.
func (t *Table) buildNode(kind node.Kind, key string, fields []string) (*node.Node, error) {
	sep := t.opts.Sep
	switch kind {
	case node.KindScalar:
		if len(fields) < 5 || len(fields[3]) != 1 {
			return nil, fmt.Errorf("malformed scalar line")
		}
		text, err := unescapeField(fields[4], sep)
		if err != nil {
			return nil, err
		}
		v, err := node.ParseValueText(fields[3][0], text, t.opts)
		if err != nil {
			return nil, err
		}
		return node.NewScalar(key, v, t.opts), nil
	case node.KindObject:
		return node.NewObject(key, t.opts), nil
	case node.KindValueArray:
		if len(fields) < 4 || len(fields[3]) != 1 {
			return nil, fmt.Errorf("malformed value array line")
		}
		tag := fields[3][0]
		elemKind, ok := node.ValueKindForTag(tag)
		if !ok {
			return nil, fmt.Errorf("unknown element tag %q", tag)
		}
		arr := node.NewValueArrayOf(key, elemKind, t.opts)
		for _, raw := range fields[4:] {
			text, err := unescapeField(raw, sep)
			if err != nil {
				return nil, err
			}
			v, err := node.ParseValueText(tag, text, t.opts)
			if err != nil {
				return nil, err
			}
			if err := node.Add(arr, v); err != nil {
				return nil, err
			}
		}
		return arr, nil
	case node.KindObjectArray:
		return node.NewObjectArray(key, t.opts), nil
	case node.KindLazyObject, node.KindLazyArray:
		if len(fields) < 5 {
			return nil, fmt.Errorf("malformed lazy line")
		}
		raw, err := unescapeField(fields[4], sep)
		if err != nil {
			return nil, err
		}
		el, err := jsonelem.Parse([]byte(raw))
		if err != nil {
			return nil, err
		}
		if kind == node.KindLazyObject {
			return node.NewLazyObject(key, el, t.opts), nil
		}
		return node.NewLazyArray(key, el, t.opts), nil
	}
	return nil, fmt.Errorf("unknown node kind %d", int(kind))
}

// escapeField protects the separator, backslashes and line breaks inside
// a field. \c stands for the separator so any single-byte separator works.
func escapeField(s string, sep byte) string {
	if !strings.ContainsAny(s, string([]byte{sep, '\\', '\n', '\r'})) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case sep:
			b.WriteString(`\c`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// unescapeField reverses escapeField; a malformed escape aborts the load.
func unescapeField(s string, sep byte) (string, error) {
	if !strings.Contains(s, `\`) {
		return s, nil
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(s) {
			return "", fmt.Errorf("dangling escape")
		}
		switch s[i] {
		case '\\':
			b.WriteByte('\\')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 'c':
			b.WriteByte(sep)
		default:
			return "", fmt.Errorf("bad escape \\%c", s[i])
		}
	}
	return b.String(), nil
}
