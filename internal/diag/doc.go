// Package diag defines the diagnostic model shared by the lexer, the tree
// builder and the driver.
//
// Diagnostic is the central record: Severity, a numeric Code with a stable
// string ID (LEX1001, SYN2002, REW7002, ...), a short Message, the Primary
// span and optional Notes that point at related source.
//
// Producers emit through a Reporter, usually BagReporter, so they stay
// decoupled from storage. Rendering lives in internal/diagfmt; this package
// does no IO apart from the golden/short one-line formatters used by tests
// and the CLI.
package diag
