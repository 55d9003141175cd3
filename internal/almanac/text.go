package almanac

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/Almanac/core/errors"
	"github.com/FocuswithJustin/Almanac/core/interval"
)

// textGrammar is the participle grammar for the line-oriented almanac form.
// Newlines carry no structure: rule rows are read three numbers at a time,
// so documents reflow freely.
//
//nolint:govet // participle grammar tags are not standard struct tags
type textGrammar struct {
	Seeds []uint64    `"seeds" ":" @Int+`
	Maps  []*mapBlock `@@*`
}

//nolint:govet // participle grammar tags are not standard struct tags
type mapBlock struct {
	Source string    `@Word "-" "to" "-"`
	Target string    `@Word "map" ":"`
	Rules  []*triple `@@*`
}

//nolint:govet // participle grammar tags are not standard struct tags
type triple struct {
	TargetStart uint64 `@Int`
	SourceStart uint64 `@Int`
	Length      uint64 `@Int`
}

// textLexer tokenizes the text almanac form. Categories are lowercase
// words.
var textLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Word", Pattern: `[a-z]+`},
	{Name: "Punct", Pattern: `[-:]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// textParser is the participle parser for the text almanac form.
var textParser = participle.MustBuild[textGrammar](
	participle.Lexer(textLexer),
	participle.Elide("Whitespace"),
)

// reservedWords cannot name categories in the text form.
var reservedWords = map[string]bool{
	"seeds": true,
	"to":    true,
	"map":   true,
}

// ParseText parses the line-oriented text almanac form. A map header with
// no rule rows is legal and yields an identity map.
func ParseText(data []byte) (*Document, error) {
	parsed, err := textParser.ParseBytes("", data)
	if err != nil {
		return nil, &errors.ParseError{Format: "almanac", Message: err.Error(), Err: err}
	}

	doc := &Document{Seeds: parsed.Seeds}
	for _, b := range parsed.Maps {
		if reservedWords[b.Source] || reservedWords[b.Target] {
			return nil, &errors.ParseError{
				Format:  "almanac",
				Message: fmt.Sprintf("%s-to-%s map uses a reserved word as a category", b.Source, b.Target),
			}
		}
		block := MapBlock{Source: b.Source, Target: b.Target}
		for _, row := range b.Rules {
			block.Rules = append(block.Rules, interval.NewRule(row.TargetStart, row.SourceStart, row.Length))
		}
		doc.Maps = append(doc.Maps, block)
	}
	return doc, nil
}
