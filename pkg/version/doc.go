// Package version provides semantic version handling for the delegator.
//
// Versions are compared with semantic-version precedence: numeric
// major/minor/patch first, then prerelease identifiers, with build metadata
// ignored. The sentinel [Head] marks builds from the main development branch,
// which never take part in "newer release available" checks.
package version
