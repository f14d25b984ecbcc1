// Package fstable holds the file table and directory tree.
//
// Entries live in an arena of slots addressed by generation-checked handles
// (Ref). Parent and child links are stored as handles, never as pointers, so
// the tree cannot form ownership cycles. Removing an entry bumps its slot's
// generation, so a stale Ref never resolves to the slot's next occupant.
//
// Generation 0 is never issued; the zero Ref is the null handle.
package fstable
