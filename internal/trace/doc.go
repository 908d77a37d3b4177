// Package trace records what the generator does and how long it takes.
//
// Tracing is enabled from the command line:
//
//	aster gen --trace=- --trace-level=detail aster.toml
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: writes each event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events, dumped when a run fails
//   - MultiTracer: fans out to several tracers
//
// # Levels and scopes
//
// Each event has a scope: driver (a whole run), manifest (one input file),
// stage (load, lower, assign, emit) or node (a single item). The level picks
// how deep events are recorded: phase stops at manifests, detail adds
// stages, debug adds items.
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeStage, "lower", parentID)
//	defer span.End("")
package trace
