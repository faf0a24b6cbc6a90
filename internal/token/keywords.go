package token

// KeywordRole describes how a reserved word behaves at a receiver boundary.
type KeywordRole uint8

const (
	// NotKeyword is an ordinary identifier.
	NotKeyword KeywordRole = iota
	// KwAtom behaves like a value: self, Self, super, crate, true, false.
	KwAtom
	// KwMut continues a `&mut` prefix.
	KwMut
	// KwStop starts a statement or construct; an expression never extends past it.
	KwStop
)

var keywords = map[string]KeywordRole{
	"self":  KwAtom,
	"Self":  KwAtom,
	"super": KwAtom,
	"crate": KwAtom,
	"true":  KwAtom,
	"false": KwAtom,

	"mut": KwMut,

	"if":       KwStop,
	"match":    KwStop,
	"while":    KwStop,
	"for":      KwStop,
	"loop":     KwStop,
	"return":   KwStop,
	"break":    KwStop,
	"continue": KwStop,
	"let":      KwStop,
	"in":       KwStop,
	"else":     KwStop,
	"as":       KwStop,
	"move":     KwStop,
	"yield":    KwStop,
	"unsafe":   KwStop,
	"async":    KwStop,
	"fn":       KwStop,
	"static":   KwStop,
	"const":    KwStop,
	"where":    KwStop,
	"impl":     KwStop,
	"dyn":      KwStop,
	"ref":      KwStop,
	"box":      KwStop,
	"pub":      KwStop,
	"use":      KwStop,
	"mod":      KwStop,
	"struct":   KwStop,
	"enum":     KwStop,
	"trait":    KwStop,
	"type":     KwStop,
	"extern":   KwStop,
}

// LookupKeyword возвращает роль идентификатора; регистрозависимо.
func LookupKeyword(ident string) KeywordRole {
	return keywords[ident]
}
