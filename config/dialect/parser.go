package dialect

import (
	"errors"
	"fmt"

	"github.com/0xalexb/bluecommit/config/tree"
)

// MaxFileSize is the default upper bound on the size of a configuration file.
const MaxFileSize = 64 << 10

// ErrTooLarge is returned when the input exceeds the parser's size limit.
var ErrTooLarge = errors.New("configuration file too large")

// Diagnostic describes a line that did not contribute to the parsed tree.
type Diagnostic struct {
	Line    int
	Message string
	Err     error
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("line %d: %s", d.Line, d.Message)
}

// Unwrap returns the underlying error, if any.
func (d Diagnostic) Unwrap() error {
	return d.Err
}

// Document is the result of parsing a configuration file.
type Document struct {
	Tree        tree.Map
	Diagnostics []Diagnostic
}

// Option configures a Parser.
type Option func(*Parser)

// WithMaxSize sets the size limit in bytes. Non-positive values keep MaxFileSize.
func WithMaxSize(size int) Option {
	return func(p *Parser) {
		if size > 0 {
			p.maxSize = size
		}
	}
}

// Parser turns raw configuration text into a tree.
type Parser struct {
	maxSize int
}

// NewParser creates a Parser.
func NewParser(opts ...Option) *Parser {
	parser := &Parser{maxSize: MaxFileSize}

	for _, apply := range opts {
		apply(parser)
	}

	return parser
}

// Parse lexes data, infers every value and assigns it into a new tree.
// The only error is ErrTooLarge; malformed lines and conflicting paths are
// reported in Document.Diagnostics and skipped.
func (p *Parser) Parse(data []byte) (*Document, error) {
	if len(data) > p.maxSize {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, len(data), p.maxSize)
	}

	doc := &Document{Tree: tree.Map{}}

	for _, line := range Lex(data) {
		switch line.Kind {
		case LinePair:
			err := doc.Tree.Set(line.Path, Infer(line.Value))
			if err != nil {
				doc.Diagnostics = append(doc.Diagnostics, Diagnostic{
					Line:    line.Number,
					Message: fmt.Sprintf("%s not assigned: %v", line.Key(), err),
					Err:     err,
				})
			}
		case LineIgnored:
			doc.Diagnostics = append(doc.Diagnostics, Diagnostic{
				Line:    line.Number,
				Message: line.Reason,
				Err:     nil,
			})
		case LineBlank, LineComment, LineSection:
		}
	}

	return doc, nil
}
