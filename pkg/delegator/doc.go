// Package delegator forwards invocations of the react-native executable to
// the community CLI installed in the user's project.
//
// Before delegating, [Delegator.Main] may query the registry for a newer
// release and print deprecation notices for `init`. The registry query is
// advisory: its failures are never surfaced. A missing community CLI is
// reported with installation guidance and exit status 1; any other failure
// is returned unchanged.
//
// Programs embedding the delegator rather than executing it call [Load],
// which returns a [CLI] bound to the installed community CLI, or a
// deprecated placeholder when it is not installed.
package delegator
