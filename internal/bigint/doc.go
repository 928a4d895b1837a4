// Package bigint provides BigInteger, a fixed-width unsigned integer of 33
// 64-bit limbs used as the storage and arithmetic substrate for prime-field
// element types.
//
// Limbs are stored least-significant first. Every multi-limb operation is a
// fold of the two word-level primitives [AddWithCarry] and [SubWithBorrow]
// over the limb array, so those two functions are the only place where
// single-word overflow semantics are decided.
//
// BigInteger is a plain value: copying it copies all 33 limbs, methods with a
// pointer receiver mutate only the receiver, and operands are never modified.
// No operation fails; overflow and underflow are reported through boolean
// carry/borrow results.
package bigint
