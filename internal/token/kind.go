package token

// Kind represents the category of a token tree node.
type Kind uint8

const (
	// Invalid marks the zero Token.
	Invalid Kind = iota
	// Ident is an identifier or keyword.
	Ident
	// Literal is a number, string, char or byte literal.
	Literal
	// Punct is a single punctuation character.
	Punct
	// Group is a delimited sub-stream.
	Group
)

func (k Kind) String() string {
	switch k {
	case Ident:
		return "Ident"
	case Literal:
		return "Literal"
	case Punct:
		return "Punct"
	case Group:
		return "Group"
	default:
		return "Invalid"
	}
}

// Spacing says whether a punct is immediately followed by another punct.
type Spacing uint8

const (
	Alone Spacing = iota
	Joint
)

func (s Spacing) String() string {
	if s == Joint {
		return "Joint"
	}
	return "Alone"
}

// Delimiter is the bracket pair around a Group.
type Delimiter uint8

const (
	// None is an invisible group, never produced by the lexer.
	None Delimiter = iota
	Paren
	Bracket
	Brace
)

func (d Delimiter) String() string {
	switch d {
	case Paren:
		return "Paren"
	case Bracket:
		return "Bracket"
	case Brace:
		return "Brace"
	default:
		return "None"
	}
}

// Open returns the opening character, or 0 for None.
func (d Delimiter) Open() byte {
	switch d {
	case Paren:
		return '('
	case Bracket:
		return '['
	case Brace:
		return '{'
	default:
		return 0
	}
}

// Close returns the closing character, or 0 for None.
func (d Delimiter) Close() byte {
	switch d {
	case Paren:
		return ')'
	case Bracket:
		return ']'
	case Brace:
		return '}'
	default:
		return 0
	}
}

// DelimiterFor maps an opening or closing bracket to its Delimiter.
func DelimiterFor(ch byte) (Delimiter, bool) {
	switch ch {
	case '(', ')':
		return Paren, true
	case '[', ']':
		return Bracket, true
	case '{', '}':
		return Brace, true
	default:
		return None, false
	}
}
