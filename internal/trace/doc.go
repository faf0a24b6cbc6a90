// Package trace records what the rewriter does, for diagnosing slow or
// surprising rewrites.
//
// Enable it from the command line:
//
//	postfix rewrite --trace=- --trace-level=detail src/
//
// Tracers:
//
//   - Nop: disabled tracing, no allocations
//   - StreamTracer: writes every event as it happens
//   - RingTracer: keeps the last N events for a dump on failure
//   - MultiTracer: fans out to several tracers
//
// Levels pick which scopes are emitted:
//
//   - LevelPhase: driver runs and files
//   - LevelDetail: plus every rewritten invocation
//   - LevelDebug: plus every receiver-scanner decision
//
// Tracers travel through the driver in a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, path, parentID)
//	defer span.End("")
package trace
