package svg

import (
	"errors"
	"fmt"

	"github.com/pgavlin/svgrender/svgtree"
	"github.com/pgavlin/svgrender/usvg"
	"github.com/pgavlin/svgrender/xmltree"
)

// Error taxonomy surfaced to callers of ParseTree. Local
// recovery (invalid clip-path/mask/filter references, recursive use/
// pattern/feImage, missing glyphs, zero-size filter regions) never reaches
// this surface — those are collected as Warnings on the parsed Tree
// instead.
var (
	// ErrNotAnUTF8Str is returned when the input bytes (or, for the CLI, a
	// filesystem path) are not valid UTF-8.
	ErrNotAnUTF8Str = svgtree.ErrNotAnUTF8Str

	// ErrMalformedGZip is returned when the input starts with the gzip
	// magic but fails to decompress.
	ErrMalformedGZip = xmltree.ErrMalformedGZip

	// ErrElementsLimitReached is returned when the document contains more
	// than xmltree.MaxElements elements.
	ErrElementsLimitReached = xmltree.ErrElementsLimitReached

	// ErrNodesLimitReached is returned when the document nests more than
	// xmltree.MaxDepth levels deep.
	ErrNodesLimitReached = xmltree.ErrNodesLimitReached

	// ErrInvalidSize is returned when the root <svg> has width/height <= 0,
	// or neither width, height, nor viewBox is set.
	ErrInvalidSize = usvg.ErrInvalidSize

	// ErrNoRootNode is returned when the document has no recognizable
	// <svg> root element.
	ErrNoRootNode = errors.New("svg: document has no recognizable <svg> root")
)

// ParseError wraps an XML tokenization failure").
type ParseError struct {
	Details string
	Cause   error
}

func (e *ParseError) Error() string { return fmt.Sprintf("svg: parsing failed: %s", e.Details) }
func (e *ParseError) Unwrap() error { return e.Cause }

func newParseError(err error) error {
	return &ParseError{Details: err.Error(), Cause: err}
}
