// Package almanac parses almanac documents: a seeds declaration followed
// by category-to-category map blocks of (target start, source start,
// length) triples. The line-oriented text form and the XML form both
// produce the same Document, which assembles the remap pipeline the engine
// consumes.
package almanac

import (
	"bytes"
	"fmt"

	"github.com/FocuswithJustin/Almanac/core/errors"
	"github.com/FocuswithJustin/Almanac/core/interval"
	"github.com/FocuswithJustin/Almanac/core/remap"
)

// Format identifies an almanac serialization.
type Format string

// Supported formats.
const (
	FormatText Format = "text"
	FormatXML  Format = "xml"
)

// MapBlock is one parsed map declaration in document order.
type MapBlock struct {
	Source string          `json:"source"`
	Target string          `json:"target"`
	Rules  []interval.Rule `json:"rules"`
}

// Document is a parsed almanac: the seed numbers and the map blocks in the
// order the input declared them.
type Document struct {
	Seeds []uint64   `json:"seeds"`
	Maps  []MapBlock `json:"maps"`
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Detect sniffs the serialization format: input whose first significant
// byte is '<' is treated as XML, everything else as text.
func Detect(data []byte) Format {
	trimmed := bytes.TrimPrefix(data, utf8BOM)
	trimmed = bytes.TrimLeft(trimmed, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '<' {
		return FormatXML
	}
	return FormatText
}

// Parse detects the document format and parses accordingly. A leading
// UTF-8 byte order mark is stripped before parsing.
func Parse(data []byte) (*Document, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if Detect(data) == FormatXML {
		return ParseXML(data)
	}
	return ParseText(data)
}

// SeedValues returns the seeds line as individual numbers.
func (d *Document) SeedValues() []uint64 {
	return append([]uint64(nil), d.Seeds...)
}

// SeedRanges interprets the seeds line as (start, length) pairs.
func (d *Document) SeedRanges() ([]interval.Interval, error) {
	if len(d.Seeds)%2 != 0 {
		return nil, errors.NewValidation("seeds",
			fmt.Sprintf("range interpretation needs an even count, got %d values", len(d.Seeds)))
	}
	out := make([]interval.Interval, 0, len(d.Seeds)/2)
	for i := 0; i < len(d.Seeds); i += 2 {
		out = append(out, interval.New(d.Seeds[i], d.Seeds[i+1]))
	}
	return out, nil
}

// Pipeline assembles the remap pipeline from the document's map blocks.
func (d *Document) Pipeline() (*remap.Pipeline, error) {
	p := &remap.Pipeline{}
	for _, b := range d.Maps {
		m, err := remap.NewCategoryMap(remap.Category(b.Source), remap.Category(b.Target), b.Rules)
		if err != nil {
			return nil, errors.Wrapf(err, "map %s-to-%s", b.Source, b.Target)
		}
		if err := p.Add(m); err != nil {
			return nil, errors.Wrapf(err, "map %s-to-%s", b.Source, b.Target)
		}
	}
	return p, nil
}
