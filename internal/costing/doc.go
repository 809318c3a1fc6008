// Package costing holds the cost-propagation and aggregation rules of the back
// office: buying-unit normalisation, extended line costs, sub-recipe roll-ups,
// the derived-ingredient reconciliation pass, dish margins and prep-list
// aggregation.
//
// Every function is a pure computation over a snapshot of the entity
// collections. Nothing here performs I/O, blocks, or returns an error:
// dangling references cost zero and degenerate divisors are replaced by one.
package costing
