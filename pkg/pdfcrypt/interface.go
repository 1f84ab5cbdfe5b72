// Package pdfcrypt defines the capability interface for password-protecting
// report documents. The shelled-out qpdf tool is one implementation; a
// library-linked AES-256 routine would be an equally valid one.
package pdfcrypt

import "context"

// Encryptor transforms an unencrypted document into a password-protected one.
//
//go:generate mockgen -package mockpdfcrypt -source=interface.go -destination=mock/mockpdfcrypt.go *
type Encryptor interface {
	// Encrypt writes a new encrypted file next to inputPath and returns its
	// path. The input file is never deleted; that is the caller's
	// responsibility.
	Encrypt(ctx context.Context, inputPath, password string) (string, error)
}
