package token

import (
	"postfix/internal/source"
)

// Token is one node of a token tree.
type Token struct {
	Kind    Kind
	Span    source.Span // for groups: from the opening delimiter through the closing one
	Text    string      // Ident and Literal
	Char    byte        // Punct
	Spacing Spacing     // Punct
	Delim   Delimiter   // Group
	Stream  Stream      // Group
	Close   source.Span // Group: the closing delimiter
}

// Stream is an ordered sequence of token trees.
type Stream []Token

// NewIdent builds an identifier token.
func NewIdent(text string, span source.Span) Token {
	return Token{Kind: Ident, Text: text, Span: span}
}

// NewLiteral builds a literal token; text is the literal as written.
func NewLiteral(text string, span source.Span) Token {
	return Token{Kind: Literal, Text: text, Span: span}
}

// NewPunct builds a single-character punct token.
func NewPunct(ch byte, spacing Spacing, span source.Span) Token {
	return Token{Kind: Punct, Char: ch, Spacing: spacing, Span: span}
}

// NewGroup builds a delimited group that owns stream.
func NewGroup(delim Delimiter, stream Stream, span source.Span) Token {
	return Token{Kind: Group, Delim: delim, Stream: stream, Span: span}
}

// IsIdent reports whether the token is an identifier with the given text.
// An empty text matches any identifier.
func (t Token) IsIdent(text string) bool {
	return t.Kind == Ident && (text == "" || t.Text == text)
}

// IsPunct reports whether the token is the punct ch.
func (t Token) IsPunct(ch byte) bool {
	return t.Kind == Punct && t.Char == ch
}

// IsAlone reports whether the token is the punct ch with Alone spacing.
func (t Token) IsAlone(ch byte) bool {
	return t.IsPunct(ch) && t.Spacing == Alone
}

// IsGroup reports whether the token is a group with the given delimiter.
func (t Token) IsGroup(d Delimiter) bool {
	return t.Kind == Group && t.Delim == d
}

// Keyword returns the keyword role of an identifier; NotKeyword for other kinds.
func (t Token) Keyword() KeywordRole {
	if t.Kind != Ident {
		return NotKeyword
	}
	return LookupKeyword(t.Text)
}

// IsOperand reports whether the token can end an operand:
// a literal, a paren/bracket group or a non-stop identifier.
func (t Token) IsOperand() bool {
	switch t.Kind {
	case Literal:
		return true
	case Group:
		return t.Delim == Paren || t.Delim == Bracket
	case Ident:
		role := t.Keyword()
		return role == NotKeyword || role == KwAtom
	default:
		return false
	}
}

// Describe renders a short human-readable form for diagnostics.
func (t Token) Describe() string {
	switch t.Kind {
	case Ident:
		return "identifier `" + t.Text + "`"
	case Literal:
		return "literal `" + t.Text + "`"
	case Punct:
		return "`" + string(t.Char) + "`"
	case Group:
		if t.Delim == None {
			return "invisible group"
		}
		return "`" + string(t.Delim.Open()) + "...`"
	default:
		return "invalid token"
	}
}

// Equal compares two streams structurally, ignoring spans.
func (s Stream) Equal(other Stream) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if !s[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// Equal compares two tokens structurally, ignoring spans.
func (t Token) Equal(other Token) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case Ident, Literal:
		return t.Text == other.Text
	case Punct:
		return t.Char == other.Char && t.Spacing == other.Spacing
	case Group:
		return t.Delim == other.Delim && t.Stream.Equal(other.Stream)
	default:
		return true
	}
}

// Count returns the number of tokens in the tree, groups included.
func (s Stream) Count() int {
	n := 0
	for _, t := range s {
		n++
		if t.Kind == Group {
			n += t.Stream.Count()
		}
	}
	return n
}
