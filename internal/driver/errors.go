package driver

import (
	"errors"

	"postfix/internal/diag"
	"postfix/internal/scan"
	"postfix/internal/source"
)

// reportRewriteError turns a rewriter failure in file into a diagnostic.
func reportRewriteError(bag *diag.Bag, file source.FileID, err error) {
	var se *scan.Error
	if !errors.As(err, &se) {
		bag.Add(diag.NewError(diag.RewInternal, source.Span{File: file}, err.Error()))
		return
	}

	var d diag.Diagnostic
	switch se.Kind {
	case scan.KindEmptyReceiver:
		d = diag.NewError(diag.RewEmptyReceiver, se.Span, "postfix macro invocation has no receiver: "+se.Msg)
	case scan.KindUnsupported:
		d = diag.NewError(diag.RewUnsupported, se.Span, "unsupported receiver expression: "+se.Msg).
			WithNote(se.Span, "use the prefix form `name!(receiver, ...)` here")
	case scan.KindDepth:
		d = diag.NewError(diag.RewDepthExceeded, se.Span, se.Msg).
			WithNote(se.Span, "raise [rewrite].max_depth or --max-depth")
	default:
		d = diag.NewError(diag.RewInternal, se.Span, se.Error())
	}
	bag.Add(d)
}

// noFile is a FileID no FileSet hands out; spans in it print without a location.
const noFile = source.FileID(^uint32(0))

func loadError(bag *diag.Bag, err error) {
	bag.Add(diag.NewError(diag.IOLoadError, source.Span{File: noFile}, "failed to load file: "+err.Error()))
}
