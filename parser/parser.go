// Package parser implements a recursive-descent parser for the ICU
// MessageFormat pattern language: plain text, simple and typed arguments
// (number, date, time), plural/selectordinal/select arguments, the `#`
// placeholder, and XML-like tags.
package parser

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/pyrocat101/icumsgfmt/ast"
	"github.com/pyrocat101/icumsgfmt/internal/patternsyntax"
)

// Options configures a Parser. The zero value matches the grammar's
// defaults.
type Options struct {
	// ShouldIgnoreTag disables tag parsing: '<' is always treated as
	// literal content and no Tag nodes are ever produced.
	ShouldIgnoreTag bool
	// RequireOtherClause rejects a plural/selectordinal/select argument
	// that has no "other" selector clause with MissingOtherClause. Off by
	// default, matching historical parser behavior.
	RequireOtherClause bool
}

// Parser parses a single message. It is single-use: call Parse once.
type Parser struct {
	cursor             cursor
	shouldIgnoreTag    bool
	requireOtherClause bool
	used               bool
}

// New returns a Parser over message. opts may be nil to use the defaults.
func New(message string, opts *Options) *Parser {
	var shouldIgnoreTag, requireOtherClause bool
	if opts != nil {
		shouldIgnoreTag = opts.ShouldIgnoreTag
		requireOtherClause = opts.RequireOtherClause
	}
	return &Parser{
		cursor:             newCursor(message),
		shouldIgnoreTag:    shouldIgnoreTag,
		requireOtherClause: requireOtherClause,
	}
}

// Parse consumes the entire message and returns its AST, or the first
// error encountered. Calling Parse more than once panics, matching the
// single-use contract of the reference parser this implementation is
// ported from.
func (p *Parser) Parse() (ast.Message, error) {
	if p.used {
		panic("parser can only be used once")
	}
	p.used = true
	return p.parseMessage(0, "", false)
}

// parseMessage parses a run of elements. nestingLevel is positive when
// inside a plural/select option body or a tag's children; parentArgType is
// the enclosing plural/selectordinal/select type (or "" at the top level);
// expectingCloseTag is true when a matching "</" should terminate the run
// instead of being treated as an error.
func (p *Parser) parseMessage(nestingLevel int, parentArgType string, expectingCloseTag bool) (ast.Message, error) {
	var elements ast.Message

	for !p.cursor.isEOF() {
		ch := p.cursor.char()
		var el ast.Element
		var err error

		switch {
		case ch == '{':
			el, err = p.parseArgument(nestingLevel, expectingCloseTag)
		case ch == '}' && nestingLevel > 0:
			return elements, nil
		case ch == '#' && (parentArgType == "plural" || parentArgType == "selectordinal"):
			start := p.cursor.position()
			p.cursor.bump()
			el = &ast.Pound{Base: ast.Base{Type: ast.KindPound, Span: ast.Span{Start: start, End: p.cursor.position()}}}
		case ch == '<' && !p.shouldIgnoreTag && peekIs(p.cursor, '/'):
			if expectingCloseTag {
				return elements, nil
			}
			return nil, p.errorAt(UnmatchedClosingTag, p.cursor.position(), p.cursor.position())
		case ch == '<' && !p.shouldIgnoreTag && peekIsLower(p.cursor):
			el, err = p.parseTag(nestingLevel, parentArgType)
		default:
			el, err = p.parseLiteral(nestingLevel, parentArgType)
		}

		if err != nil {
			return nil, err
		}
		elements = append(elements, el)
	}

	return elements, nil
}

func peekIs(c cursor, want rune) bool {
	r, ok := c.peek()
	return ok && r == want
}

func peekIsLower(c cursor) bool {
	r, ok := c.peek()
	return ok && r >= 'a' && r <= 'z'
}

func (p *Parser) errorAt(kind ErrorKind, start, end ast.Position) *Error {
	return &Error{Kind: kind, Message: p.cursor.message, Span: ast.Span{Start: start, End: end}}
}

// parseTag parses `<name/>` or `<name>children</name>`; attributes are not
// accepted, only whitespace may follow the name. A tag name must start with
// an ASCII lowercase letter; parseMessage only calls here once that has been
// confirmed by peek.
func (p *Parser) parseTag(nestingLevel int, parentArgType string) (ast.Element, error) {
	start := p.cursor.position()
	p.cursor.bump() // '<'

	tagName := p.parseTagName()
	p.cursor.bumpSpace()

	if p.cursor.bumpIf("/>") {
		return &ast.Tag{
			Base:     ast.Base{Type: ast.KindTag, Span: ast.Span{Start: start, End: p.cursor.position()}},
			Name:     tagName,
			Children: ast.Message{},
		}, nil
	}

	if !p.cursor.bumpIf(">") {
		return nil, p.errorAt(InvalidTag, start, p.cursor.position())
	}

	children, err := p.parseMessage(nestingLevel+1, parentArgType, true)
	if err != nil {
		return nil, err
	}

	endTagStart := p.cursor.position()
	if !p.cursor.bumpIf("</") {
		return nil, p.errorAt(UnclosedTag, start, p.cursor.position())
	}

	if p.cursor.isEOF() || !(p.cursor.char() >= 'a' && p.cursor.char() <= 'z') {
		return nil, p.errorAt(InvalidTag, endTagStart, p.cursor.position())
	}

	closingNameStart := p.cursor.position()
	closingName := p.parseTagName()
	if tagName != closingName {
		return nil, p.errorAt(UnmatchedClosingTag, closingNameStart, p.cursor.position())
	}

	p.cursor.bumpSpace()
	if !p.cursor.bumpIf(">") {
		return nil, p.errorAt(InvalidTag, endTagStart, p.cursor.position())
	}

	return &ast.Tag{
		Base:     ast.Base{Type: ast.KindTag, Span: ast.Span{Start: start, End: p.cursor.position()}},
		Name:     tagName,
		Children: children,
	}, nil
}

func (p *Parser) parseTagName() string {
	startOffset := p.cursor.offset()
	p.cursor.bump() // the first tag name character, already validated by the caller
	for !p.cursor.isEOF() && isPotentialElementNameChar(p.cursor.char()) {
		p.cursor.bump()
	}
	return p.cursor.slice(startOffset, p.cursor.offset())
}

// parseLiteral scans a run of decoded text: quote-escapes resolved, stray
// '<' merged in where it cannot start a tag, and terminated by '{', an
// active '#', an unescaped tag-opening '<', or (when nested) '}'.
func (p *Parser) parseLiteral(nestingLevel int, parentArgType string) (ast.Element, error) {
	start := p.cursor.position()

	var value strings.Builder
	for {
		if p.cursor.bumpIf("''") {
			value.WriteByte('\'')
			continue
		}
		if fragment, ok := p.tryParseQuote(parentArgType); ok {
			value.WriteString(fragment)
			continue
		}
		if fragment, ok := p.tryParseUnquoted(nestingLevel, parentArgType); ok {
			value.WriteRune(fragment)
			continue
		}
		if fragment, ok := p.tryParseLeftAngleBracket(); ok {
			value.WriteRune(fragment)
			continue
		}
		break
	}

	return &ast.Literal{
		Base:  ast.Base{Type: ast.KindLiteral, Span: ast.Span{Start: start, End: p.cursor.position()}},
		Value: value.String(),
	}, nil
}

// tryParseQuote implements "apostrophe only quotes where needed": a ' only
// opens a quoted run when immediately followed by a character that itself
// needs quoting ('{', '<', '>', '}', or '#' inside a plural/selectordinal).
func (p *Parser) tryParseQuote(parentArgType string) (string, bool) {
	if p.cursor.isEOF() || p.cursor.char() != '\'' {
		return "", false
	}

	next, ok := p.cursor.peek()
	if !ok {
		return "", false
	}
	switch next {
	case '{', '<', '>', '}':
	case '#':
		if parentArgType != "plural" && parentArgType != "selectordinal" {
			return "", false
		}
	default:
		return "", false
	}

	p.cursor.bump() // apostrophe
	var value strings.Builder
	value.WriteRune(p.cursor.char()) // escaped char
	p.cursor.bump()

	for !p.cursor.isEOF() {
		ch := p.cursor.char()
		if ch == '\'' {
			if n, ok := p.cursor.peek(); ok && n == '\'' {
				value.WriteByte('\'')
				p.cursor.bump()
			} else {
				p.cursor.bump()
				break
			}
		} else {
			value.WriteRune(ch)
		}
		p.cursor.bump()
	}

	return value.String(), true
}

func (p *Parser) tryParseUnquoted(nestingLevel int, parentArgType string) (rune, bool) {
	if p.cursor.isEOF() {
		return 0, false
	}
	ch := p.cursor.char()
	switch {
	case ch == '<' || ch == '{':
		return 0, false
	case ch == '#' && (parentArgType == "plural" || parentArgType == "selectordinal"):
		return 0, false
	case ch == '}' && nestingLevel > 0:
		return 0, false
	default:
		p.cursor.bump()
		return ch, true
	}
}

func (p *Parser) tryParseLeftAngleBracket() (rune, bool) {
	if p.cursor.isEOF() || p.cursor.char() != '<' {
		return 0, false
	}
	if !p.shouldIgnoreTag {
		if next, ok := p.cursor.peek(); ok && ((next >= 'a' && next <= 'z') || next == '/') {
			return 0, false
		}
	}
	p.cursor.bump()
	return '<', true
}

// parseArgument parses `{...}` starting at the opening brace.
func (p *Parser) parseArgument(nestingLevel int, expectingCloseTag bool) (ast.Element, error) {
	openPos := p.cursor.position()
	p.cursor.bump() // '{'
	p.cursor.bumpSpace()

	if p.cursor.isEOF() {
		return nil, p.errorAt(ExpectArgumentClosingBrace, openPos, p.cursor.position())
	}

	if p.cursor.char() == '}' {
		p.cursor.bump()
		return nil, p.errorAt(EmptyArgument, openPos, p.cursor.position())
	}

	name, _ := p.parseIdentifierIfPossible()
	if name == "" {
		return nil, p.errorAt(MalformedArgument, openPos, p.cursor.position())
	}

	p.cursor.bumpSpace()
	if p.cursor.isEOF() {
		return nil, p.errorAt(ExpectArgumentClosingBrace, openPos, p.cursor.position())
	}

	switch p.cursor.char() {
	case '}':
		p.cursor.bump()
		return &ast.Argument{
			Base: ast.Base{Type: ast.KindArgument, Span: ast.Span{Start: openPos, End: p.cursor.position()}},
			Name: name,
		}, nil

	case ',':
		p.cursor.bump()
		p.cursor.bumpSpace()
		if p.cursor.isEOF() {
			return nil, p.errorAt(ExpectArgumentClosingBrace, openPos, p.cursor.position())
		}
		return p.parseArgumentOptions(nestingLevel, expectingCloseTag, name, openPos)

	default:
		return nil, p.errorAt(MalformedArgument, openPos, p.cursor.position())
	}
}

func (p *Parser) parseArgumentOptions(nestingLevel int, expectingCloseTag bool, name string, openPos ast.Position) (ast.Element, error) {
	typeStart := p.cursor.position()
	argType, _ := p.parseIdentifierIfPossible()
	typeEnd := p.cursor.position()

	switch argType {
	case "":
		return nil, p.errorAt(ExpectArgumentType, typeStart, typeEnd)

	case "number", "date", "time":
		p.cursor.bumpSpace()

		var style string
		var styleSpan ast.Span
		hasStyle := false

		if p.cursor.bumpIf(",") {
			p.cursor.bumpSpace()
			styleStart := p.cursor.position()
			rawStyle, err := p.parseSimpleArgStyleIfPossible()
			if err != nil {
				return nil, err
			}
			style = strings.TrimRightFunc(rawStyle, unicode.IsSpace)
			if style == "" {
				return nil, p.errorAt(ExpectArgumentStyle, p.cursor.position(), p.cursor.position())
			}
			styleSpan = ast.Span{Start: styleStart, End: p.cursor.position()}
			hasStyle = true
		}

		if err := p.tryParseArgumentClose(openPos); err != nil {
			return nil, err
		}
		span := ast.Span{Start: openPos, End: p.cursor.position()}

		if !hasStyle {
			switch argType {
			case "number":
				return &ast.Number{Base: ast.Base{Type: ast.KindNumber, Span: span}, Name: name}, nil
			case "date":
				return &ast.Date{Base: ast.Base{Type: ast.KindDate, Span: span}, Name: name}, nil
			default:
				return &ast.Time{Base: ast.Base{Type: ast.KindTime, Span: span}, Name: name}, nil
			}
		}

		if strings.HasPrefix(style, "::") {
			skeletonText := strings.TrimLeftFunc(style[2:], unicode.IsSpace)

			switch argType {
			case "number":
				skeleton, kind := parseNumberSkeletonFromString(skeletonText, styleSpan)
				if kind != "" {
					return nil, p.errorAt(kind, styleSpan.Start, styleSpan.End)
				}
				return &ast.Number{
					Base:  ast.Base{Type: ast.KindNumber, Span: span},
					Name:  name,
					Style: &ast.NumberStyle{Kind: ast.StyleKindSkeleton, Skeleton: skeleton},
				}, nil
			default:
				if skeletonText == "" {
					return nil, p.errorAt(ExpectDateTimeSkeleton, span.Start, span.End)
				}
				dtStyle := &ast.DateTimeStyle{
					Kind:     ast.StyleKindSkeleton,
					Skeleton: &ast.DateTimeSkeleton{Pattern: skeletonText, Span: styleSpan},
				}
				if argType == "date" {
					return &ast.Date{Base: ast.Base{Type: ast.KindDate, Span: span}, Name: name, Style: dtStyle}, nil
				}
				return &ast.Time{Base: ast.Base{Type: ast.KindTime, Span: span}, Name: name, Style: dtStyle}, nil
			}
		}

		switch argType {
		case "number":
			return &ast.Number{
				Base:  ast.Base{Type: ast.KindNumber, Span: span},
				Name:  name,
				Style: &ast.NumberStyle{Kind: ast.StyleKindText, Text: style},
			}, nil
		case "date":
			return &ast.Date{
				Base:  ast.Base{Type: ast.KindDate, Span: span},
				Name:  name,
				Style: &ast.DateTimeStyle{Kind: ast.StyleKindText, Text: style},
			}, nil
		default:
			return &ast.Time{
				Base:  ast.Base{Type: ast.KindTime, Span: span},
				Name:  name,
				Style: &ast.DateTimeStyle{Kind: ast.StyleKindText, Text: style},
			}, nil
		}

	case "plural", "selectordinal", "select":
		typeEnd := p.cursor.position()

		p.cursor.bumpSpace()
		if !p.cursor.bumpIf(",") {
			return nil, p.errorAt(ExpectSelectArgumentOptions, typeEnd, typeEnd)
		}
		p.cursor.bumpSpace()

		selector, selectorSpan := p.parseIdentifierIfPossible()

		var pluralOffset int64
		if argType != "select" && selector == "offset" {
			if !p.cursor.bumpIf(":") {
				return nil, p.errorAt(ExpectPluralArgumentOffsetValue, p.cursor.position(), p.cursor.position())
			}
			p.cursor.bumpSpace()
			offset, err := p.tryParseDecimalInteger(ExpectPluralArgumentOffsetValue, InvalidPluralArgumentOffsetValue)
			if err != nil {
				return nil, err
			}
			pluralOffset = offset

			p.cursor.bumpSpace()
			selector, selectorSpan = p.parseIdentifierIfPossible()
		}

		options, err := p.tryParsePluralOrSelectOptions(nestingLevel, argType, expectingCloseTag, selector, selectorSpan)
		if err != nil {
			return nil, err
		}
		if err := p.tryParseArgumentClose(openPos); err != nil {
			return nil, err
		}

		span := ast.Span{Start: openPos, End: p.cursor.position()}
		if argType == "select" {
			return &ast.Select{Base: ast.Base{Type: ast.KindSelect, Span: span}, Name: name, Options: options}, nil
		}
		pluralType := ast.PluralCardinal
		if argType == "selectordinal" {
			pluralType = ast.PluralOrdinal
		}
		return &ast.Plural{
			Base:       ast.Base{Type: ast.KindPlural, Span: span},
			Name:       name,
			PluralType: pluralType,
			Offset:     pluralOffset,
			Options:    options,
		}, nil

	default:
		return nil, p.errorAt(InvalidArgumentType, typeStart, typeEnd)
	}
}

// tryParsePluralOrSelectOptions parses the "selector {fragment} ..." list
// following a plural/selectordinal/select's offset/type, reusing the
// identifier already scanned by the caller as the first candidate selector.
func (p *Parser) tryParsePluralOrSelectOptions(nestingLevel int, parentArgType string, expectingCloseTag bool, firstSelector string, firstSelectorSpan ast.Span) (ast.OptionList, error) {
	var options ast.OptionList
	seen := map[string]bool{}
	hasOther := false

	selector := firstSelector
	selectorSpan := firstSelectorSpan

	for {
		if selector == "" {
			start := p.cursor.position()
			if parentArgType != "select" && p.cursor.bumpIf("=") {
				if _, err := p.tryParseDecimalInteger(ExpectPluralArgumentSelector, InvalidPluralArgumentSelector); err != nil {
					return nil, err
				}
				selectorSpan = ast.Span{Start: start, End: p.cursor.position()}
				selector = p.cursor.slice(start.Offset, p.cursor.offset())
			} else {
				break
			}
		}

		if seen[selector] {
			kind := DuplicatePluralArgumentSelector
			if parentArgType == "select" {
				kind = DuplicateSelectArgumentSelector
			}
			return nil, p.errorAt(kind, selectorSpan.Start, selectorSpan.End)
		}

		if selector == "other" {
			hasOther = true
		}

		p.cursor.bumpSpace()
		openBrace := p.cursor.position()
		if !p.cursor.bumpIf("{") {
			kind := ExpectPluralArgumentSelectorFragment
			if parentArgType == "select" {
				kind = ExpectSelectArgumentSelectorFragment
			}
			return nil, p.errorAt(kind, p.cursor.position(), p.cursor.position())
		}

		fragment, err := p.parseMessage(nestingLevel+1, parentArgType, expectingCloseTag)
		if err != nil {
			return nil, err
		}
		if err := p.tryParseArgumentClose(openBrace); err != nil {
			return nil, err
		}

		options = append(options, ast.Option{
			Selector: selector,
			Body:     ast.OptionBody{Value: fragment, Span: ast.Span{Start: openBrace, End: p.cursor.position()}},
		})
		seen[selector] = true

		p.cursor.bumpSpace()
		selector, selectorSpan = p.parseIdentifierIfPossible()
	}

	if len(options) == 0 {
		kind := ExpectPluralArgumentSelector
		if parentArgType == "select" {
			kind = ExpectSelectArgumentSelector
		}
		return nil, p.errorAt(kind, p.cursor.position(), p.cursor.position())
	}

	if p.requireOtherClause && !hasOther {
		return nil, p.errorAt(MissingOtherClause, p.cursor.position(), p.cursor.position())
	}

	return options, nil
}

func (p *Parser) tryParseDecimalInteger(expectKind, invalidKind ErrorKind) (int64, error) {
	sign := int64(1)
	start := p.cursor.position()

	if !p.cursor.bumpIf("+") && p.cursor.bumpIf("-") {
		sign = -1
	}

	var digits strings.Builder
	for !p.cursor.isEOF() && unicode.IsDigit(p.cursor.char()) {
		digits.WriteRune(p.cursor.char())
		p.cursor.bump()
	}

	span := ast.Span{Start: start, End: p.cursor.position()}
	if p.cursor.isEOF() {
		return 0, p.errorAt(expectKind, span.Start, span.End)
	}

	value, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0, p.errorAt(invalidKind, span.Start, span.End)
	}
	return value * sign, nil
}

// parseSimpleArgStyleIfPossible scans a style string for number/date/time,
// tracking brace nesting and treating apostrophes as quoting (the quoted
// text is kept verbatim in the returned style).
func (p *Parser) parseSimpleArgStyleIfPossible() (string, error) {
	nestedBraces := 0
	start := p.cursor.position()

	for !p.cursor.isEOF() {
		switch p.cursor.char() {
		case '\'':
			p.cursor.bump()
			apostrophePos := p.cursor.position()
			if !p.cursor.bumpUntil('\'') {
				return "", p.errorAt(UnclosedQuoteInArgumentStyle, apostrophePos, p.cursor.position())
			}
			p.cursor.bump()
		case '{':
			nestedBraces++
			p.cursor.bump()
		case '}':
			if nestedBraces > 0 {
				nestedBraces--
				p.cursor.bump()
			} else {
				return p.cursor.slice(start.Offset, p.cursor.offset()), nil
			}
		default:
			p.cursor.bump()
		}
	}

	return p.cursor.slice(start.Offset, p.cursor.offset()), nil
}

func (p *Parser) tryParseArgumentClose(openPos ast.Position) error {
	if p.cursor.isEOF() || p.cursor.char() != '}' {
		return p.errorAt(ExpectArgumentClosingBrace, openPos, p.cursor.position())
	}
	p.cursor.bump()
	return nil
}

// parseIdentifierIfPossible advances through identifier characters (not
// whitespace, not Pattern_Syntax) and returns the scanned text and its
// span. Returns "" if the cursor was not on an identifier character.
func (p *Parser) parseIdentifierIfPossible() (string, ast.Span) {
	start := p.cursor.position()
	for !p.cursor.isEOF() && !unicode.IsSpace(p.cursor.char()) && !patternsyntax.Is(p.cursor.char()) {
		p.cursor.bump()
	}
	end := p.cursor.position()
	return p.cursor.slice(start.Offset, end.Offset), ast.Span{Start: start, End: end}
}
