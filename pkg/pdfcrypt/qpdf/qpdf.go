// Package qpdf provides a pdfcrypt.Encryptor implementation that shells out
// to the external qpdf executable.
package qpdf

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"reporter/pkg/pdfcrypt"
	"reporter/pkg/serrors"

	"github.com/google/uuid"
)

// Options configure the qpdf invocation.
type Options struct {
	// Path is the qpdf executable path or name. Empty means "qpdf" resolved
	// via PATH.
	Path string
	// Label is the prefix of the produced file name. Empty means
	// DefaultLabel.
	Label string
}

// DefaultLabel prefixes the encrypted artifact file name.
const DefaultLabel = "Videojuegos"

// QPDF invokes the qpdf executable to produce AES-256 encrypted copies of
// PDF documents. It is safe for concurrent use.
type QPDF struct {
	options Options
}

// New constructs a QPDF encryptor with the given options.
func New(options Options) *QPDF {
	if options.Path == "" {
		options.Path = "qpdf"
	}
	if options.Label == "" {
		options.Label = DefaultLabel
	}

	return &QPDF{options: options}
}

// Encrypt runs qpdf over inputPath with both owner and user passwords set to
// password, requesting 256-bit encryption with full print permission, no
// modification, no extraction, and accessibility extraction allowed.
//
// The executable's existence is checked up front so a missing tool is
// reported as a distinct misconfiguration error instead of being inferred
// from locale-specific shell error text.
func (q *QPDF) Encrypt(ctx context.Context, inputPath, password string) (string, error) {
	bin, err := exec.LookPath(q.options.Path)
	if err != nil {
		return "", serrors.Wrap(serrors.ErrEncryptionToolMissing, err,
			"qpdf executable %q not found", q.options.Path)
	}

	outName := fmt.Sprintf("%s_PROTEGIDO_%s_%s.pdf",
		q.options.Label,
		time.Now().Format("2006-01-02"),
		uuid.NewString())
	outPath := filepath.Join(filepath.Dir(inputPath), outName)

	cmd := exec.CommandContext(ctx, bin, inputPath,
		"--encrypt", password, password, "256",
		"--print=full",
		"--modify=none",
		"--extract=n",
		"--accessibility=y",
		"--", outPath)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", serrors.Wrap(serrors.ErrEncryptionFailed, err,
			"qpdf exited with an error: %s", strings.TrimSpace(stderr.String()))
	}

	// defensive check against silent tool failure
	if _, err := os.Stat(outPath); err != nil {
		return "", serrors.With(serrors.ErrEncryptionOutputMissing,
			"qpdf exited cleanly but %q was not created", outPath)
	}

	return outPath, nil
}

// Ensure QPDF conforms to the pdfcrypt.Encryptor interface at compile time.
var _ pdfcrypt.Encryptor = (*QPDF)(nil)
