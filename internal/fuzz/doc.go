// Package fuzztests houses Go fuzz harnesses for the rewrite pipeline
// (source -> lexer -> rewrite -> printer -> lexer). They guard against
// panics, runaway recursion and output that does not lex back.
//
// Назначение: прогонять произвольные байты через FileSet, лексер,
// переписывание и печать.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
