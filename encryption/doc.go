// Package encryption seals model files at rest with AES-256-GCM.
//
// A [Sealer] produces a self-describing JSON envelope holding the nonce, the
// ciphertext and the authentication tag. [Sealer] satisfies markov.Sealer, so
// a trained model can be stored encrypted:
//
//	key, _ := encryption.GenerateKey()
//	s, _ := encryption.NewSealer(key)
//	err := markov.Save("model.json", chain, s)
//
// Keys are 32 random bytes, exchanged as standard base64 with [EncodeKey] and
// [DecodeKey]. During key rotation, old keys stay readable with
// [WithPreviousKeys]; new envelopes are always sealed with the primary key.
package encryption
