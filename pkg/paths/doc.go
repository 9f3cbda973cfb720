// Package paths provides utilities for searching directory trees.
//
// Searches walk from a starting directory toward the filesystem root, the way
// Node resolves node_modules, so packages installed in a parent project are
// found from any nested working directory.
package paths
