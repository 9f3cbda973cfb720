// Package shimerrors provides error definitions shared by the delegator
// packages.
//
// Errors are sentinels intended to be wrapped with %w and matched with
// [errors.Is], so callers can branch on the failure class without inspecting
// message text.
package shimerrors
