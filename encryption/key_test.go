package encryption_test

import (
	"bytes"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/hasbyte1/go-pwrecover/encryption"
)

func TestGenerateKey(t *testing.T) {
	a, err := encryption.GenerateKey()
	if err != nil {
		t.Fatal(err)
	}
	b, _ := encryption.GenerateKey()
	if len(a) != encryption.KeySize {
		t.Errorf("len = %d, want %d", len(a), encryption.KeySize)
	}
	if bytes.Equal(a, b) {
		t.Error("two generated keys are equal")
	}
}

func TestEncodeDecodeKey(t *testing.T) {
	key, _ := encryption.GenerateKey()
	got, err := encryption.DecodeKey(encryption.EncodeKey(key))
	if err != nil || !bytes.Equal(got, key) {
		t.Fatalf("DecodeKey(EncodeKey(k)) = (%x, %v)", got, err)
	}
	got, err = encryption.DecodeKey(base64.URLEncoding.EncodeToString(key))
	if err != nil || !bytes.Equal(got, key) {
		t.Errorf("URL-safe key: (%x, %v)", got, err)
	}
}

func TestDecodeKey_Errors(t *testing.T) {
	if _, err := encryption.DecodeKey("%%%"); err == nil {
		t.Error("DecodeKey accepted invalid base64")
	}
	short := base64.StdEncoding.EncodeToString([]byte("short"))
	if _, err := encryption.DecodeKey(short); !errors.Is(err, encryption.ErrInvalidKeyLength) {
		t.Errorf("short key: got %v, want ErrInvalidKeyLength", err)
	}
	if _, err := encryption.DecodeKey(""); !errors.Is(err, encryption.ErrEmptyKey) {
		t.Errorf("empty key: got %v, want ErrEmptyKey", err)
	}
}
