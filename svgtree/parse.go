package svgtree

import (
	"bytes"
	"errors"
	"io"
	"unicode/utf8"

	"github.com/pgavlin/svgrender/xmltree"
)

// ErrNotAnUTF8Str is returned by Parse when the (decompressed) input isn't
// valid UTF-8.
var ErrNotAnUTF8Str = errors.New("svgtree: input is not valid UTF-8")

// Parse runs the full intermediate-tree pipeline over r: tokenize (with
// transparent gzip detection), build the typed tree, resolve CSS and
// inheritance, break reference cycles, resolve <switch>, and expand <use>/
// <symbol>. The result is ready for usvg's converter to turn into a render
// tree.
func Parse(r io.Reader) (*Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	raw, err = xmltree.Decompress(raw)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(raw) {
		return nil, ErrNotAnUTF8Str
	}

	xt, err := xmltree.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}

	doc, stylesheets, err := Build(xt)
	if err != nil {
		return nil, err
	}

	ApplyCSS(doc, stylesheets)
	BreakCycles(doc)
	ResolveSwitch(doc)
	ResolveUse(doc)
	GenerateIDs(doc)

	return doc, nil
}
