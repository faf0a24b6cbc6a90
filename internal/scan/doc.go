// Package scan finds where the receiver of a postfix macro invocation starts.
//
// Given the tokens that precede `.name!(...)`, ExprLen walks backward and
// returns how many trailing tokens form the receiver expression. The walk only
// looks at token kinds, punctuation and spacing; there is no expression
// grammar. Shapes outside the supported subset fail with ErrUnsupported
// instead of guessing.
//
// Brace groups need extra care: `{...}` may close an if/else chain, a match,
// a macro body or a plain block. Those cases are told apart by the tokens in
// front of the brace, with a recursive sub-scan for conditions.
package scan
