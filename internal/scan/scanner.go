package scan

import (
	"postfix/internal/token"
)

// DefaultMaxDepth bounds nested sub-scans when Options.MaxDepth is zero.
const DefaultMaxDepth = 256

type Options struct {
	MaxDepth int  // 0 → DefaultMaxDepth
	Hook     Hook // может быть nil
}

// Scanner computes receiver lengths. It holds no per-call state and is
// safe for concurrent use.
type Scanner struct {
	opts Options
}

func New(opts Options) *Scanner {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	return &Scanner{opts: opts}
}

var defaultScanner = New(Options{})

// ExprLen returns the number of trailing tokens of toks that form the
// receiver of a postfix invocation. Zero means there is no receiver.
func ExprLen(toks token.Stream) (int, error) {
	return defaultScanner.ExprLen(toks)
}

// ExprLen is the method form of the package-level ExprLen.
func (s *Scanner) ExprLen(toks token.Stream) (int, error) {
	return s.exprLen(toks, 0)
}

// ExprLenAt is ExprLen for a caller that is already depth levels deep
// (the rewriter passes its group nesting).
func (s *Scanner) ExprLenAt(toks token.Stream, depth int) (int, error) {
	return s.exprLen(toks, depth)
}

func (s *Scanner) exprLen(toks token.Stream, depth int) (int, error) {
	start, err := s.start(toks, depth)
	if err != nil {
		return 0, err
	}
	return len(toks) - start, nil
}

func (s *Scanner) emit(depth, idx int, tok token.Token, d Decision, note string) {
	if s.opts.Hook != nil {
		s.opts.Hook(Step{Depth: depth, Index: idx, Token: tok, Decision: d, Note: note})
	}
}

// start walks toks backward and returns the index of the first receiver token.
func (s *Scanner) start(toks token.Stream, depth int) (int, error) {
	if depth > s.opts.MaxDepth {
		var at token.Token
		if len(toks) > 0 {
			at = toks[len(toks)-1]
		}
		return 0, DepthError(at, s.opts.MaxDepth)
	}

	lastPunct, lastGroup := true, true
	i := len(toks) - 1
	for i >= 0 {
		tok := toks[i]
		switch tok.Kind {
		case token.Group:
			if !lastPunct {
				// тело функции, блок if и т.п.
				s.emit(depth, i, tok, Stop, "group not followed by punctuation")
				return i + 1, nil
			}
			switch tok.Delim {
			case token.None:
				return 0, unsupported(tok, "invisible group in receiver")
			case token.Brace:
				head, done, err := s.braceStart(toks, i, depth)
				if err != nil {
					return 0, err
				}
				if done {
					return head, nil
				}
				i = head
			default:
				s.emit(depth, i, tok, Continue, "")
			}
			lastPunct, lastGroup = false, true
			i--

		case token.Ident:
			if !lastPunct && !lastGroup {
				s.emit(depth, i, tok, Stop, "two adjacent words")
				return i + 1, nil
			}
			if tok.Keyword() == token.KwStop {
				s.emit(depth, i, tok, Stop, "keyword")
				return i + 1, nil
			}
			s.emit(depth, i, tok, Continue, "")
			lastPunct, lastGroup = false, false
			i--

		case token.Literal:
			s.emit(depth, i, tok, Continue, "")
			lastPunct, lastGroup = false, false
			i--

		case token.Punct:
			next, done, err := s.punct(toks, i, depth, lastPunct)
			if err != nil {
				return 0, err
			}
			if done {
				return next, nil
			}
			i = next
			lastPunct, lastGroup = true, false

		default:
			return 0, internal(tok, "invalid token in stream")
		}
	}
	return 0, nil
}

// punct handles the punct at toks[i]. It returns either the receiver start
// (done) or the index to continue from.
func (s *Scanner) punct(toks token.Stream, i, depth int, lastPunct bool) (int, bool, error) {
	tok := toks[i]
	switch tok.Char {
	case '.':
		if tok.Spacing == token.Joint || (i > 0 && toks[i-1].IsPunct('.') && toks[i-1].Spacing == token.Joint) {
			s.emit(depth, i, tok, Stop, "range")
			return i + 1, true, nil
		}
		s.emit(depth, i, tok, Continue, "")
		return i - 1, false, nil

	case ':', '?':
		s.emit(depth, i, tok, Continue, "")
		return i - 1, false, nil

	case ',', ';', '+', '/', '%', '=', '<', '>', '|', '^':
		s.emit(depth, i, tok, Stop, "terminator")
		return i + 1, true, nil

	case '!':
		if lastPunct {
			// `!=` должен был остановить скан на '='
			return 0, false, unsupported(tok, "`!` followed by punctuation")
		}
		if i == 0 {
			s.emit(depth, i, tok, Stop, "prefix negation")
			return i + 1, true, nil
		}
		if prev := toks[i-1]; prev.Kind == token.Ident && prev.Keyword() == token.NotKeyword {
			s.emit(depth, i, tok, Continue, "macro bang")
			return i - 1, false, nil
		}
		s.emit(depth, i, tok, Stop, "prefix negation")
		return i + 1, true, nil

	case '&', '*', '-':
		return s.prefixRun(toks, i, depth)
	}
	return 0, false, unsupported(tok, "punctuation `%c` in receiver", tok.Char)
}

// isPrefixOp reports whether tok may start a prefix operator unit.
func isPrefixOp(tok token.Token) bool {
	return tok.IsPunct('&') || tok.IsPunct('*') || tok.IsPunct('-')
}

// unitStart returns the first index of the operator unit ending at j:
// j itself, or j-1 for the `&&` pair.
func unitStart(toks token.Stream, j int) int {
	if toks[j].IsPunct('&') && j > 0 && toks[j-1].IsPunct('&') && toks[j-1].Spacing == token.Joint {
		return j - 1
	}
	return j
}

// prefixRun classifies the run of & * - units ending at toks[i].
//
// The leftmost unit of a run is binary when an operand stands before it;
// every other unit is unary and belongs to the receiver.
func (s *Scanner) prefixRun(toks token.Stream, i, depth int) (int, bool, error) {
	var starts []int
	j := i
	for j >= 0 && isPrefixOp(toks[j]) {
		lo := unitStart(toks, j)
		if lo != j && len(starts) > 0 {
			// `&&` внутри серии - бинарный оператор, серия на нём кончается
			break
		}
		starts = append(starts, lo)
		j = lo - 1
	}

	partnerOperand := false
	var partner token.Token
	if j >= 0 {
		partner = toks[j]
		partnerOperand = partner.IsOperand() || partner.IsPunct('?')
	}

	if partnerOperand {
		if len(starts) == 1 {
			s.emit(depth, i, toks[i], PrefixBinary, "binary operator")
			return i + 1, true, nil
		}
		head := starts[len(starts)-2]
		s.emit(depth, head, toks[head], PrefixUnary, "")
		s.emit(depth, starts[len(starts)-1], toks[starts[len(starts)-1]], PrefixBinary, "binary operator")
		return head, true, nil
	}

	head := starts[len(starts)-1]
	if partner.Kind == token.Ident && partner.Keyword() == token.KwMut {
		// &mut &x: продолжаем через `mut`
		s.emit(depth, head, toks[head], PrefixUnary, "after mut")
		return head - 1, false, nil
	}
	s.emit(depth, head, toks[head], PrefixUnary, "")
	return head, true, nil
}

// braceStart resolves the brace group at toks[i]. It returns either the
// final receiver start (done) or the index of the leftmost token of the
// braced construct, after which the normal scan resumes.
func (s *Scanner) braceStart(toks token.Stream, i, depth int) (int, bool, error) {
	for {
		if i == 0 {
			s.emit(depth, i, toks[i], BraceBlock, "block at stream start")
			return 0, true, nil
		}
		brace := toks[i]
		before := toks[i-1]

		switch before.Kind {
		case token.Group, token.Literal:
			// условие или scrutinee
		case token.Ident:
			if before.IsIdent("else") {
				if i < 2 || !toks[i-2].IsGroup(token.Brace) {
					return 0, false, unsupported(before, "`else` without a preceding block")
				}
				s.emit(depth, i-1, before, BraceChain, "else")
				i -= 2
				continue
			}
			// любое другое слово, включая ключевые: полный под-скан
		case token.Punct:
			switch before.Char {
			case '!':
				// тело макроса: dbg!{ .. }
				s.emit(depth, i, brace, Continue, "macro body")
				return i, false, nil
			case ';', ',':
				s.emit(depth, i, brace, BraceBlock, "block statement")
				return i, true, nil
			case '|':
				return 0, false, unsupported(before, "closures are not supported")
			default:
				return 0, false, unsupported(before, "punctuation `%c` before block", before.Char)
			}
		default:
			return 0, false, internal(before, "invalid token in stream")
		}

		s.emit(depth, i-1, before, SubScan, "")
		m, err := s.exprLen(toks[:i], depth+1)
		if err != nil {
			return 0, false, err
		}
		if m == 0 {
			if before.Kind == token.Ident && before.Keyword() == token.KwStop {
				return 0, false, unsupported(before, "`%s` block in receiver is not supported", before.Text)
			}
			return 0, false, unsupported(before, "empty condition before block")
		}
		h := i - m
		if h == 0 {
			// `Foo { .. }` в начале потока
			s.emit(depth, 0, toks[0], BraceHead, "struct-like head at stream start")
			return 0, true, nil
		}
		kw := toks[h-1]
		switch {
		case kw.IsIdent("if") && h >= 2 && toks[h-2].IsIdent("else"):
			if h < 3 || !toks[h-3].IsGroup(token.Brace) {
				return 0, false, unsupported(toks[h-2], "`else if` without a preceding block")
			}
			s.emit(depth, h-2, toks[h-2], BraceChain, "else if")
			i = h - 3
		case kw.IsIdent("if") || kw.IsIdent("match"):
			s.emit(depth, h-1, kw, BraceHead, kw.Text)
			return h - 1, true, nil
		case kw.IsPunct('='):
			if h >= 2 && toks[h-2].IsPunct('=') {
				return 0, false, unsupported(kw, "`==` in condition is not supported")
			}
			return 0, false, unsupported(kw, "`if let` and struct literals after `=` are not supported")
		default:
			prev := "start of stream"
			if h >= 2 {
				prev = toks[h-2].Describe()
			}
			return 0, false, unsupported(kw, "braced expression after %s and %s", prev, kw.Describe())
		}
	}
}
