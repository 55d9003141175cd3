package almanac

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/Almanac/core/errors"
	"github.com/FocuswithJustin/Almanac/core/interval"
	"github.com/FocuswithJustin/Almanac/core/xml"
)

// ParseXML parses the XML almanac form:
//
//	<almanac>
//	  <seeds>79 14 55 13</seeds>
//	  <map source="seed" target="soil">
//	    <rule target-start="50" source-start="98" length="2"/>
//	  </map>
//	</almanac>
//
// The seeds element is optional; a map element without rule children yields
// an identity map.
func ParseXML(data []byte) (*Document, error) {
	parsed, err := xml.Parse(data)
	if err != nil {
		return nil, &errors.ParseError{Format: "almanac XML", Message: err.Error(), Err: err}
	}
	root := parsed.Root()
	if root == nil || root.Name() != "almanac" {
		return nil, errors.NewParse("almanac XML", "", "missing <almanac> root element")
	}

	doc := &Document{}

	seedsNode, err := parsed.XPathFirst("/almanac/seeds")
	if err != nil {
		return nil, &errors.ParseError{Format: "almanac XML", Message: err.Error(), Err: err}
	}
	if seedsNode != nil {
		seeds, err := parseSeedList(seedsNode.Text())
		if err != nil {
			return nil, err
		}
		doc.Seeds = seeds
	}

	mapNodes, err := parsed.XPath("/almanac/map")
	if err != nil {
		return nil, &errors.ParseError{Format: "almanac XML", Message: err.Error(), Err: err}
	}
	for i, mn := range mapNodes {
		source, target := mn.Attr("source"), mn.Attr("target")
		if source == "" || target == "" {
			return nil, errors.NewParse("almanac XML", "",
				fmt.Sprintf("map element %d is missing its source or target attribute", i))
		}
		block := MapBlock{Source: source, Target: target}

		ruleNodes, err := mn.XPath("rule")
		if err != nil {
			return nil, &errors.ParseError{Format: "almanac XML", Message: err.Error(), Err: err}
		}
		for _, rn := range ruleNodes {
			targetStart, err := attrUint(rn, "target-start", source, target)
			if err != nil {
				return nil, err
			}
			sourceStart, err := attrUint(rn, "source-start", source, target)
			if err != nil {
				return nil, err
			}
			length, err := attrUint(rn, "length", source, target)
			if err != nil {
				return nil, err
			}
			block.Rules = append(block.Rules, interval.NewRule(targetStart, sourceStart, length))
		}
		doc.Maps = append(doc.Maps, block)
	}
	return doc, nil
}

// parseSeedList splits whitespace-separated seed numbers.
func parseSeedList(text string) ([]uint64, error) {
	fields := strings.Fields(text)
	seeds := make([]uint64, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return nil, &errors.ParseError{
				Format:  "almanac XML",
				Message: fmt.Sprintf("seed value %q is not an unsigned integer", f),
				Err:     err,
			}
		}
		seeds = append(seeds, n)
	}
	return seeds, nil
}

// attrUint reads a required numeric attribute from a rule element.
func attrUint(n *xml.Node, attr, source, target string) (uint64, error) {
	raw := n.Attr(attr)
	if raw == "" {
		return 0, errors.NewParse("almanac XML", "",
			fmt.Sprintf("rule in %s-to-%s map is missing the %s attribute", source, target, attr))
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, &errors.ParseError{
			Format:  "almanac XML",
			Message: fmt.Sprintf("rule attribute %s=%q in %s-to-%s map is not an unsigned integer", attr, raw, source, target),
			Err:     err,
		}
	}
	return v, nil
}
