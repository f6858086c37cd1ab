// Package hashing is the hash function boundary of the password recovery
// tools: every candidate plaintext is turned into a comparable digest here.
//
// # Architecture
//
// Two driver kinds are registered in a [Manager]:
//
//   - [Digester]: fast, unsalted digests rendered as lowercase hexadecimal
//     (SHA-512 by default, plus MD5, SHA-1, SHA-256, SHA3, BLAKE2b, BLAKE3 and
//     MurmurHash3). A target matches when Digest(candidate) equals the stored
//     string.
//   - [Verifier]: slow, self-salted encoded hashes (bcrypt, Argon2i,
//     Argon2id). Such targets cannot be indexed; every candidate is checked
//     against every unresolved target with [Verifier.Check].
//
// The [Manager] is a named driver registry with a default digest algorithm:
//
//	m := hashing.NewDefaultManager() // sha512 default, all drivers registered
//	d, _ := m.Digester(hashing.SHA512)
//	d.Digest("cat") // "1b6f..."
//
// # Encoded hash formats
//
// bcrypt hashes use the Modular Crypt Format ($2a$, $2b$, $2y$). Argon2 hashes
// use the PHC string format:
//
//	$argon2id$v=19$m=65536,t=3,p=2$<base64-salt>$<base64-hash>
//
// [DetectAlgorithm] maps an encoded hash to the verifier that can check it.
package hashing
