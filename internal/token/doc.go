// Package token defines the token tree the rewriter operates on.
// Invariants:
//   - A Stream is a strict tree: every Group owns its child Stream.
//   - Tokens are values; rewriting builds new streams and never mutates input.
//   - Punct tokens carry exactly one character plus its Spacing.
//     Multi-character operators are sequences of Joint puncts ("&&" = '&' Joint, '&' Alone).
//   - Keywords are identifiers. Their role is looked up by text, not by kind.
//   - Tokens inserted by the rewriter reuse the span of the removed `.`.
package token
