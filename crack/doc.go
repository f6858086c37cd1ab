// Package crack matches candidate plaintexts against target hashes.
//
// A [Cracker] owns a set of [Target] slots and consumes candidates from a
// [Source] until every slot is resolved, a cap is reached, the source runs
// dry, or the context is canceled. The outcome is a [Report] whose Results
// has one entry per target, in input order; unresolved slots are reported
// as not found rather than as an error.
//
// Three strategies are provided on top of the same driver:
//
//   - [CrackMarkov] draws candidates from a trained markov.Chain, skipping
//     duplicates through a bounded [CandidateSet].
//   - [CrackBrute] enumerates an alphabet in shortlex order.
//   - [CrackDictionary] hashes every distinct word of a wordlist once.
//
// Targets come in three forms, see [ParseTarget]: a hex digest under the
// configured algorithm, a hex digest with a salt appended to candidates
// before hashing, or a self-describing encoded hash such as bcrypt or Argon2
// which is checked with the matching hashing.Verifier.
//
// With Workers > 1 the Markov strategy runs [Cracker.RunParallel]: every
// worker draws from its own ChaCha20 stream, duplicates are suppressed
// through a shared set, and matches flow to a single collector goroutine.
package crack
