// Package encryption implements seekable AES-CTR encryption of byte streams.
// Any absolute byte range can be encrypted or decrypted independently, with
// no padding and no ciphertext length expansion, so encrypted streams support
// random access and append-only growth. Keys of 16, 24 or 32 bytes select
// AES-128, AES-192 or AES-256.
package encryption
