// Package pattern models a crochet row as a tree of stitches, bundles and
// repeated patterns, and owns every algorithm that reads or rewrites that tree.
//
// Consume/generate totals are never cached on the nodes: Of, PerRepeat and
// ListStats recompute them from the catalog on every call, and the JSON codec
// writes freshly computed values when a tree is persisted. Canonicalize
// rewrites a list to its structurally minimal form without changing its
// totals. AppendStitch and ApplyAdjust are the only edit primitives; both
// produce lists that Canonicalize would leave unchanged at the tail.
//
// Nothing here fails on malformed data. Unknown stitch ids contribute zero and
// edits that do not apply return the input list untouched, because trees are
// edited while only partially valid.
package pattern
