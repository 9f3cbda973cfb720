// Package registry queries an npm-compatible package registry for the latest
// published version of a package.
//
// Lookups are best effort: every failure is reported as an absent [Latest]
// rather than an error, because the result only drives an advisory warning.
package registry
