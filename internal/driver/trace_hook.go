package driver

import (
	"strconv"

	"postfix/internal/rewrite"
	"postfix/internal/scan"
	"postfix/internal/trace"
)

// TraceHook reports every scanner decision as a ScopeScan point under
// parent. It returns nil when t would drop them anyway.
func TraceHook(t trace.Tracer, parent uint64) scan.Hook {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(trace.ScopeScan) {
		return nil
	}
	return func(s scan.Step) {
		extra := map[string]string{
			"depth": strconv.Itoa(s.Depth),
			"index": strconv.Itoa(s.Index),
			"token": s.Token.Describe(),
		}
		if s.Note != "" {
			extra["note"] = s.Note
		}
		trace.Point(t, trace.ScopeScan, "scan.step", s.Decision.String(), parent, extra)
	}
}

func traceInvocation(t trace.Tracer, parent uint64, inv rewrite.Invocation) {
	if !t.Enabled() || !t.Level().ShouldEmit(trace.ScopeRewrite) {
		return
	}
	trace.Point(t, trace.ScopeRewrite, "invocation", inv.Name.Text+"!", parent, map[string]string{
		"site":     inv.Site.String(),
		"depth":    strconv.Itoa(inv.Depth),
		"receiver": strconv.Itoa(len(inv.Receiver)),
	})
}

func chainHooks(hooks ...scan.Hook) scan.Hook {
	var live []scan.Hook
	for _, h := range hooks {
		if h != nil {
			live = append(live, h)
		}
	}
	switch len(live) {
	case 0:
		return nil
	case 1:
		return live[0]
	}
	return func(s scan.Step) {
		for _, h := range live {
			h(s)
		}
	}
}
