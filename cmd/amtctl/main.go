// amtctl drives an append-only Merkle tree from the command line: it keeps
// the full log and the tree's commitment on disk and checks every change
// through the tree before it is saved.
package main

import "github.com/celestiaorg/amt/cmd/amtctl/internal/cmd"

func main() {
	cmd.Execute()
}
