// Package dbug provides namespace-scoped debug logging that is silent unless
// switched on through the environment. Code can stay instrumented with debug
// calls permanently; the DEBUG variable decides at start-up which namespaces
// print.
//
// # Design overview
//
//   - Construction-time resolution: a Logger decides whether it is enabled
//     when it is created, against patterns parsed once per Registry. A
//     disabled Logger's Log returns before formatting anything.
//   - Pattern language: DEBUG holds comma or space separated tokens. "app"
//     enables exactly app, "app*" every namespace starting with app, "*"
//     everything, and a leading '-' turns any token into a skip pattern. Skip
//     patterns always win, wherever they appear. Since whitespace separates
//     tokens, a namespace containing a space can never be matched.
//   - Naming, not trees: Extend concatenates "parent:suffix" and resolves the
//     child on its own. A child can print while its parent is silent.
//   - Per-logger timing: each line ends with "+<elapsed>", the time since that
//     Logger's previous line (or its creation).
//   - Colour: every namespace hashes onto a stable xterm-256 colour when the
//     output is a terminal. A UTC timestamp prefix is opt-in (ShowDate).
//
// # Usage
//
//	var debug = dbug.New("worker")
//
//	debug.Log("starting")
//	debug.Logf("picked job %d", id)
//
//	db := debug.Extend("db") // namespace "worker:db"
//	db.Log("connected")
//
//	log := debug.Func() // func(string) for callback style call sites
//	log("done")
//
// Run with:
//
//	DEBUG='worker*,-worker:db' ./app
//
// # Configuration
//
// dbug.New uses the Default registry, built once from DEBUG, DEBUG_COLORS,
// DEBUG_SHOW_DATE, DEBUG_PALETTE, DEBUG_OUTPUT and NO_COLOR (see
// RegistryFromEnv). Programs and tests that want explicit configuration build
// their own Registry with NewRegistry and create loggers from it.
//
// Log never reports write errors. Wrap the destination in an ObservedWriter to
// count or react to lines the writer rejected.
//
// The cmd/dbug tool evaluates a pattern string against namespaces without
// running the instrumented program.
package dbug
