// Package amt implements an append-only Merkle tree that keeps nothing but
// its commitment: the root, the number of records, and the last record.
//
// The records and inner nodes live with an untrusted party (see package
// prover), which hands the tree a proof with every request. The tree replays
// the proof against its root before it accepts an insert, an update or a
// membership claim, so a forged proof can never change the commitment.
//
// Leaves and inner nodes are domain separated:
//
//	leaf = H(0x00 || record)
//	node = H(0x01 || left || right)
//
// The left subtree of every node is the largest perfect subtree that fits,
// as in RFC 6962.
package amt
