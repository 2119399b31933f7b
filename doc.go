// Package hdbscan computes a hierarchical density-based clustering
// (HDBSCAN*) of a finite set of points in a low- to moderate-dimensional
// Euclidean space.
//
// What it does
//
//   - Builds a KD-tree index over the input points (subpackage kdtree).
//   - Derives each point's core distance from its minPts-th nearest
//     neighbor and augments the tree with subtree core-distance bounds.
//   - Drives a well-separated pair decomposition (subpackage wspd)
//     combined with a bichromatic-closest-pair search (subpackage bccp)
//     under the mutual-reachability metric to emit candidate
//     minimum-spanning-tree edges in geometrically increasing distance
//     bands.
//   - Commits candidate edges into a union-find (subpackage unionfind)
//     via a batched, speculative parallel Kruskal (subpackages
//     speculativefor, kruskal), preserving the sequential semantics of
//     Kruskal's algorithm while running each band's edge batch in
//     parallel.
//   - Produces a single-linkage dendrogram (subpackage dendrogram) from
//     the resulting n−1 mutual-reachability MST edges.
//
// Why mutual reachability
//
//   - A raw Euclidean MST is sensitive to outliers and uneven density;
//     HDBSCAN* instead computes the MST of the mutual-reachability
//     graph, where mreach(p, q) = max(d(p, q), coreDist(p), coreDist(q)).
//     This "smooths" the metric so sparse points repel nearby clusters
//     instead of bridging them.
//
// Scope
//
//   - This module computes the MST and dendrogram. Flat-cluster
//     extraction (stability / excess-of-mass selection), point ingestion
//     from files, and plotting are intentionally left to callers — see
//     Run for the single entry point, and subpackage mstgraph for an
//     adjacency-list view of a finished MST (tree paths, merge heights,
//     threshold cuts).
//
// Concurrency
//
//   - The pipeline forks at threshold-sized subtree boundaries using
//     golang.org/x/sync/errgroup, and arbitrates parallel Kruskal commits
//     via atomic reservation slots (subpackage speculativefor). There is
//     no blocking I/O anywhere in the core; a panic in any worker aborts
//     the whole call.
//
//	go get github.com/sablegraph/hdbscan
package hdbscan
