package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0
	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexTokenTooLong             Code = 1005
	LexUnterminatedChar         Code = 1006

	// Дерево токенов
	SynInfo              Code = 2000
	SynUnexpectedClose   Code = 2001
	SynUnclosedDelimiter Code = 2002
	SynMismatchedClose   Code = 2003
	SynBadWrapper        Code = 2004

	// Ввод/вывод
	IOInfo      Code = 4000
	IOLoadError Code = 4001
	IOWriteErr  Code = 4002
	IOCacheErr  Code = 4003

	// Переписывание postfix-вызовов
	RewInfo          Code = 7000
	RewEmptyReceiver Code = 7001
	RewUnsupported   Code = 7002
	RewInternal      Code = 7003
	RewDepthExceeded Code = 7004
	RewNotFormatted  Code = 7005
)

var (
	codeDescription = map[Code]string{
		UnknownCode: "Unknown error",

		LexInfo:                     "Lexical information",
		LexUnknownChar:              "Unknown character",
		LexUnterminatedString:       "Unterminated string literal",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexBadNumber:                "Invalid number literal",
		LexTokenTooLong:             "Token too long",
		LexUnterminatedChar:         "Unterminated character literal",

		SynInfo:              "Token tree information",
		SynUnexpectedClose:   "Unexpected closing delimiter",
		SynUnclosedDelimiter: "Unclosed delimiter",
		SynMismatchedClose:   "Mismatched closing delimiter",
		SynBadWrapper:        "Malformed postfix_macros! wrapper",

		IOInfo:      "I/O information",
		IOLoadError: "Failed to load source file",
		IOWriteErr:  "Failed to write output",
		IOCacheErr:  "Result cache unavailable",

		RewInfo:          "Rewrite information",
		RewEmptyReceiver: "Postfix macro without receiver",
		RewUnsupported:   "Unsupported receiver expression",
		RewInternal:      "Internal rewriter error",
		RewDepthExceeded: "Nesting too deep",
		RewNotFormatted:  "File contains postfix macro invocations",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 7000 && ic < 8000:
		return fmt.Sprintf("REW%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
