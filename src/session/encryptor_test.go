package session

import (
	"bytes"
	"testing"
)

const testHexKey = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

func TestNewEncryptor_EmptyKey(t *testing.T) {
	enc, err := NewEncryptor("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if enc != nil {
		t.Fatal("expected nil encryptor for empty key")
	}
}

func TestNewEncryptor_InvalidKeys(t *testing.T) {
	if _, err := NewEncryptor("not-hex"); err == nil {
		t.Fatal("expected error for invalid hex")
	}
	if _, err := NewEncryptor("0123456789abcdef0123456789abcdef"); err == nil {
		t.Fatal("expected error for 16-byte key")
	}
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	enc, err := NewEncryptor(testHexKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	plaintext := []byte(`{"userId":"admin","isAdmin":true}`)
	sealed, err := enc.Encrypt(plaintext)
	if err != nil {
		t.Fatalf("encrypt error: %v", err)
	}
	if bytes.Contains(sealed, []byte("admin")) {
		t.Fatal("ciphertext leaks plaintext")
	}

	opened, err := enc.Decrypt(sealed)
	if err != nil {
		t.Fatalf("decrypt error: %v", err)
	}
	if !bytes.Equal(opened, plaintext) {
		t.Fatalf("got %q, want %q", opened, plaintext)
	}
}

func TestEncrypt_NonceIsRandom(t *testing.T) {
	enc, _ := NewEncryptor(testHexKey)
	a, _ := enc.Encrypt([]byte("same"))
	b, _ := enc.Encrypt([]byte("same"))
	if bytes.Equal(a, b) {
		t.Fatal("two encryptions of the same value must differ")
	}
}

func TestDecrypt_PlainRowsPassThrough(t *testing.T) {
	enc, _ := NewEncryptor(testHexKey)

	short := []byte(`"bob"`)
	got, err := enc.Decrypt(short)
	if err != nil || !bytes.Equal(got, short) {
		t.Fatalf("short value: got %q, %v", got, err)
	}

	long := []byte(`{"userId":"someone-with-a-long-name","isLoggedIn":true}`)
	got, err = enc.Decrypt(long)
	if err != nil || !bytes.Equal(got, long) {
		t.Fatalf("unencrypted value: got %q, %v", got, err)
	}
}

func TestNilEncryptor_PassThrough(t *testing.T) {
	var enc *Encryptor
	data := []byte("hello")

	sealed, err := enc.Encrypt(data)
	if err != nil || !bytes.Equal(sealed, data) {
		t.Fatalf("encrypt: got %q, %v", sealed, err)
	}
	opened, err := enc.Decrypt(data)
	if err != nil || !bytes.Equal(opened, data) {
		t.Fatalf("decrypt: got %q, %v", opened, err)
	}
}
