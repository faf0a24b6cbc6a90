package scan_test

import "postfix/internal/source"

var source0 = source.Span{}
