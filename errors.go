package xmlevents

import "fmt"

// ParseError is implemented by every error kind the reader can return
// from read_event, except IOError, which wraps a failure of the
// underlying byte source and carries no offset.
type ParseError interface {
	error
	// Offset is the byte position of the start of the offending
	// construct, the same value surfaced by Reader.ErrorPosition.
	Offset() int64
}

// SyntaxError reports a construct the tokenizer could not close: an
// unclosed tag, comment, CDATA section, processing instruction, doctype,
// or bang markup. When ReadEvent returns it, it is fatal — the reader
// transitions to its terminal state and every subsequent ReadEvent call
// returns EOF. ReadText also returns a SyntaxError when an element's
// content is not plain text followed by its matching end tag; that one
// leaves the reader's state as it is.
type SyntaxError struct {
	offset  int64
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("xmlevents: syntax error at byte %d: %s", e.offset, e.Message)
}

// Offset implements ParseError.
func (e *SyntaxError) Offset() int64 { return e.offset }

// NewSyntaxError builds a SyntaxError anchored at the given byte offset.
func NewSyntaxError(offset int64, message string) *SyntaxError {
	return &SyntaxError{offset: offset, Message: message}
}

// IllFormedKind enumerates the recoverable ill-formedness cases of §7.
type IllFormedKind uint8

const (
	// MismatchedEndTag: a closing tag's name differs from the open element.
	MismatchedEndTag IllFormedKind = iota + 1
	// UnmatchedEndTag: a closing tag appeared with no open element.
	UnmatchedEndTag
	// DoubleHyphenInComment: "--" found inside a comment body.
	DoubleHyphenInComment
	// MissingDoctypeName: a DOCTYPE declaration has no name.
	MissingDoctypeName
	// MissingDeclVersion: an XML declaration lacks a version attribute.
	MissingDeclVersion
)

func (k IllFormedKind) String() string {
	switch k {
	case MismatchedEndTag:
		return "MismatchedEndTag"
	case UnmatchedEndTag:
		return "UnmatchedEndTag"
	case DoubleHyphenInComment:
		return "DoubleHyphenInComment"
	case MissingDoctypeName:
		return "MissingDoctypeName"
	case MissingDeclVersion:
		return "MissingDeclVersion"
	default:
		return "Unknown"
	}
}

// IllFormedError reports a structurally recognized but semantically
// invalid construct. Unlike SyntaxError, the reader recovers: subsequent
// ReadEvent calls continue from after the offending construct.
type IllFormedError struct {
	offset   int64
	Kind     IllFormedKind
	Expected string // set for MismatchedEndTag
	Found    string // set for MismatchedEndTag and UnmatchedEndTag
}

func (e *IllFormedError) Error() string {
	switch e.Kind {
	case MismatchedEndTag:
		return fmt.Sprintf("xmlevents: mismatched end tag at byte %d: expected %q, found %q", e.offset, e.Expected, e.Found)
	case UnmatchedEndTag:
		return fmt.Sprintf("xmlevents: unmatched end tag at byte %d: %q", e.offset, e.Found)
	default:
		return fmt.Sprintf("xmlevents: ill-formed (%s) at byte %d", e.Kind, e.offset)
	}
}

// Offset implements ParseError.
func (e *IllFormedError) Offset() int64 { return e.offset }

// EncodingError reports bytes that do not belong to the declared or
// detected encoding. It is recoverable at the event boundary.
type EncodingError struct {
	offset  int64
	Message string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("xmlevents: encoding error at byte %d: %s", e.offset, e.Message)
}

// Offset implements ParseError.
func (e *EncodingError) Offset() int64 { return e.offset }

// AttrErrorKind enumerates the ways an attribute body can fail to parse.
type AttrErrorKind uint8

const (
	// UnquotedValue: "=" was not followed by a quote character.
	UnquotedValue AttrErrorKind = iota + 1
	// UnclosedValue: EOF reached inside a quoted attribute value.
	UnclosedValue
	// ExpectedEq: an attribute name was not followed by "=".
	ExpectedEq
	// DuplicatedAttr: the same attribute name appeared twice.
	DuplicatedAttr
)

func (k AttrErrorKind) String() string {
	switch k {
	case UnquotedValue:
		return "UnquotedValue"
	case UnclosedValue:
		return "UnclosedValue"
	case ExpectedEq:
		return "ExpectedEq"
	case DuplicatedAttr:
		return "DuplicatedAttr"
	default:
		return "Unknown"
	}
}

// AttrError is surfaced by the Attributes iterator; it never interrupts
// event reading — it only appears when the caller iterates attributes.
type AttrError struct {
	offset  int64
	Kind    AttrErrorKind
	Key     string
	PrevKey int64 // byte offset of the previous occurrence, for DuplicatedAttr
}

func (e *AttrError) Error() string {
	switch e.Kind {
	case DuplicatedAttr:
		return fmt.Sprintf("xmlevents: duplicated attribute %q at byte %d (first seen at %d)", e.Key, e.offset, e.PrevKey)
	default:
		return fmt.Sprintf("xmlevents: attribute error (%s) at byte %d: %q", e.Kind, e.offset, e.Key)
	}
}

// Offset implements ParseError.
func (e *AttrError) Offset() int64 { return e.offset }

// IOError wraps an error returned by the underlying byte source. It is
// always fatal; the reader should be discarded.
type IOError struct {
	Err error
}

func (e *IOError) Error() string { return fmt.Sprintf("xmlevents: io error: %s", e.Err) }

// Unwrap allows errors.Is/As to see through to the underlying error.
func (e *IOError) Unwrap() error { return e.Err }
