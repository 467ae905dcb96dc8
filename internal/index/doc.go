// Package index provides the directory index of the in-memory engine: the
// map that classifies every path as absent, file or directory and tracks the
// children of each directory.
//
// Two strategies implement Index and are indistinguishable from the outside:
//
//   - vfs.IndexHash keeps one flat map from full path to directory content
//     and one from full path to file content. Directory moves copy the
//     subtree to the destination and then delete the source.
//   - vfs.IndexTree keeps a node graph with one root per path head.
//     Directory moves re-link the subtree node.
//
// Both validate every precondition before mutating, so a failed operation
// leaves the index untouched. CreateDir creates missing ancestors while
// CreateFile requires its parent to exist.
package index
