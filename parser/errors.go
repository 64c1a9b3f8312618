package parser

import (
	"fmt"

	"github.com/pyrocat101/icumsgfmt/ast"
)

// ErrorKind enumerates the ways a pattern can fail to parse. There is
// exactly one kind per diagnostic site in the grammar; callers that need to
// react to a specific failure should switch on Kind rather than match on
// Error() text.
type ErrorKind string

const (
	UnclosedArgumentBrace                ErrorKind = "UnclosedArgumentBrace"
	EmptyArgument                        ErrorKind = "EmptyArgument"
	MalformedArgument                    ErrorKind = "MalformedArgument"
	ExpectArgumentType                   ErrorKind = "ExpectArgumentType"
	InvalidArgumentType                  ErrorKind = "InvalidArgumentType"
	ExpectArgumentStyle                  ErrorKind = "ExpectArgumentStyle"
	ExpectArgumentClosingBrace           ErrorKind = "ExpectArgumentClosingBrace"
	InvalidNumberSkeleton                ErrorKind = "InvalidNumberSkeleton"
	ExpectNumberSkeleton                 ErrorKind = "ExpectNumberSkeleton"
	InvalidDateTimeSkeleton              ErrorKind = "InvalidDateTimeSkeleton"
	ExpectDateTimeSkeleton               ErrorKind = "ExpectDateTimeSkeleton"
	UnclosedQuoteInArgumentStyle         ErrorKind = "UnclosedQuoteInArgumentStyle"
	ExpectSelectArgumentOptions          ErrorKind = "ExpectSelectArgumentOptions"
	ExpectPluralArgumentOffsetValue      ErrorKind = "ExpectPluralArgumentOffsetValue"
	InvalidPluralArgumentOffsetValue     ErrorKind = "InvalidPluralArgumentOffsetValue"
	ExpectSelectArgumentSelector         ErrorKind = "ExpectSelectArgumentSelector"
	ExpectPluralArgumentSelector         ErrorKind = "ExpectPluralArgumentSelector"
	ExpectSelectArgumentSelectorFragment ErrorKind = "ExpectSelectArgumentSelectorFragment"
	ExpectPluralArgumentSelectorFragment ErrorKind = "ExpectPluralArgumentSelectorFragment"
	InvalidPluralArgumentSelector        ErrorKind = "InvalidPluralArgumentSelector"
	DuplicatePluralArgumentSelector      ErrorKind = "DuplicatePluralArgumentSelector"
	DuplicateSelectArgumentSelector      ErrorKind = "DuplicateSelectArgumentSelector"
	MissingOtherClause                  ErrorKind = "MissingOtherClause"
	InvalidTag                          ErrorKind = "InvalidTag"
	UnclosedTag                         ErrorKind = "UnclosedTag"
	UnmatchedClosingTag                 ErrorKind = "UnmatchedClosingTag"
)

// Error is the single failure type parsing can produce: a kind, the full
// source the parser was given (so a caller can render context around the
// span without re-threading the original string), and the span to
// underline.
type Error struct {
	Kind    ErrorKind
	Message string
	Span    ast.Span
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %d:%d", e.Kind, e.Span.Start.Line, e.Span.Start.Column)
}
