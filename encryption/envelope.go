package encryption

import (
	"encoding/base64"
	"encoding/json"
	"strconv"
)

const (
	envelopeVersion = 1
	// Cipher names the only supported algorithm.
	Cipher = "aes-256-gcm"
)

// Envelope is the JSON document written by [Sealer.Seal].
//
// Binary fields are standard base64. The version, cipher and key id are
// authenticated as associated data, so they cannot be altered without
// failing [Sealer.Open].
type Envelope struct {
	Version int    `json:"v"`
	Cipher  string `json:"cipher"`
	KeyID   string `json:"kid"`
	Nonce   string `json:"nonce"`
	Value   string `json:"value"`
	Tag     string `json:"tag"`
}

func (e *Envelope) marshal() ([]byte, error) {
	return json.Marshal(e)
}

// additionalData binds the header fields to the ciphertext.
func (e *Envelope) additionalData() []byte {
	return []byte(strconv.Itoa(e.Version) + "|" + e.Cipher + "|" + e.KeyID)
}

func unmarshalEnvelope(raw []byte) (*Envelope, error) {
	var e Envelope
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, ErrInvalidEnvelope
	}
	if err := e.validate(); err != nil {
		return nil, err
	}
	return &e, nil
}

// validate checks the header and that Nonce and Tag are present. Value may be
// empty, which is the encoding of an empty ciphertext.
func (e *Envelope) validate() error {
	if e.Version != envelopeVersion || e.Cipher != Cipher || e.Nonce == "" {
		return ErrInvalidEnvelope
	}
	if e.Tag == "" {
		return ErrInvalidTag
	}
	return nil
}

func (e *Envelope) decode() (nonce, ciphertext, tag []byte, err error) {
	if nonce, err = base64.StdEncoding.DecodeString(e.Nonce); err != nil {
		return nil, nil, nil, ErrInvalidEnvelope
	}
	if ciphertext, err = base64.StdEncoding.DecodeString(e.Value); err != nil {
		return nil, nil, nil, ErrInvalidEnvelope
	}
	if tag, err = base64.StdEncoding.DecodeString(e.Tag); err != nil {
		return nil, nil, nil, ErrInvalidTag
	}
	return nonce, ciphertext, tag, nil
}
