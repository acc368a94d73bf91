package kensa

// Package kensa provides:
//
// - Fluent, composable validation of in-memory values (primitives, slices,
//   maps, nested and polymorphic object graphs)
// - A stable error model via Issues (dotted/bracket path, code, message)
// - Two parallel validation modes: contextless (Schema) and context-aware
//   (SchemaC), with adapters bridging the two and factories resolving the
//   context payload exactly once per root call
// - Full accumulation: every failing rule contributes an issue; nothing
//   short-circuits
//
// Design policy:
// - Keep only the engine and public contracts in the root package; put the
//   fluent builders under dsl/ and message catalogs under i18n/.
// - Validation failures are data (Issues); broken schema definitions panic.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	s := buildSchema()          // dsl.Object[User]()...MustBuild()
//	res := kensa.Check(ctx, s, user)
//	if !res.Ok() {
//		for _, it := range res.Issues() { ... }
//	}
