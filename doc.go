// Package nonce generates locally-unique, lock-free nonces at 64, 96,
// or 128 bits, in three variants: a plain incrementing counter, a
// millisecond-sortable counter, and an encrypted counter that runs
// either of the first two through a width-matched block cipher.
//
// A factory is a named, process-global generator created with Init and
// looked up by name on every subsequent call, so goroutines anywhere
// in a process can call Nonce/SortableNonce/EncryptedNonce for the
// same name without passing a handle around. All hot-path state is a
// pair of atomic words per factory; there is no lock on the generation
// path.
package nonce
