// Package instruction owns the name registry request schema and its payload codec.
//
// Ownership boundary:
// - the closed set of request variants and their pinned tags
// - deterministic payload encoding (tag byte, then fields in declaration order)
// - the exact inverse decoding used by host entry points
package instruction
