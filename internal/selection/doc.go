// Package selection converts between a nested UI selection inside one row and
// the persisted "stitches generated so far" offset.
//
// A Path holds one Range per tree level, root first. ComputeGenerateDone turns
// a path plus the chosen repeat of every multi-repeat node along it into a
// generated count; Locate performs the inverse greedy placement, returning the
// path together with those repeat counts.
package selection
