// Package warn renders the user-facing warnings printed by the delegator:
// stale-version notices, `init` deprecation notices and missing-dependency
// guidance.
//
// Output is styled with lipgloss when the destination is a terminal and plain
// otherwise. Which deprecation notice is shown is decided at release time
// through [Phase], never at runtime.
package warn
