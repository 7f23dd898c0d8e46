package utils

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Receipt storage is a plain directory on local disk. Names are always
// synthesized server-side; nothing from the caller ends up in a path.

var ErrReceiptNotFound = errors.New("comprovante não encontrado")

var receiptNameSafe = regexp.MustCompile(`[^\w.\-]`)

func UploadDir() string {
	if dir := strings.TrimSpace(os.Getenv("UPLOAD_DIR")); dir != "" {
		return dir
	}
	return "./uploads"
}

func EnsureUploadDir() error {
	return os.MkdirAll(UploadDir(), 0o755)
}

// ReceiptExtension maps a declared media type to a file extension. Unknown
// types get a generic binary extension; the caller-supplied filename is never
// consulted.
func ReceiptExtension(mediaType string) string {
	switch {
	case strings.Contains(mediaType, "image/png"):
		return "png"
	case strings.Contains(mediaType, "image/jpeg"):
		return "jpg"
	case strings.Contains(mediaType, "application/pdf"):
		return "pdf"
	default:
		return "bin"
	}
}

// DecodeReceiptDataURL splits a "data:<type>;base64,<payload>" string into the
// declared media type and raw bytes.
func DecodeReceiptDataURL(dataURL string) (mediaType string, data []byte, err error) {
	if !strings.HasPrefix(dataURL, "data:") {
		return "", nil, errors.New("comprovante deve ser um data URL em base64")
	}
	meta, b64, ok := strings.Cut(dataURL, ",")
	if !ok {
		return "", nil, errors.New("data URL malformado")
	}
	data, err = base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", nil, errors.New("base64 inválido")
	}
	return meta, data, nil
}

// SaveReceipt writes a proof-of-payment artifact under the upload directory
// and returns its relative path. The name combines the withdrawal id with a
// timestamp so concurrent submissions never collide.
func SaveReceipt(withdrawalID uint, mediaType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("comprovante vazio")
	}
	if err := EnsureUploadDir(); err != nil {
		return "", err
	}

	name := fmt.Sprintf("withdrawal_%d_%d.%s", withdrawalID, time.Now().UnixMilli(), ReceiptExtension(mediaType))
	if err := os.WriteFile(filepath.Join(UploadDir(), name), data, 0o644); err != nil {
		return "", err
	}
	return "uploads/" + name, nil
}

// SanitizeReceiptName strips every character outside [A-Za-z0-9_.-] so a
// requested filename cannot traverse out of the upload directory.
func SanitizeReceiptName(name string) string {
	return receiptNameSafe.ReplaceAllString(name, "")
}

// ResolveReceipt maps a requested filename to an absolute path inside the
// upload directory, or ErrReceiptNotFound when absent.
func ResolveReceipt(name string) (string, error) {
	p := filepath.Join(UploadDir(), SanitizeReceiptName(name))
	info, err := os.Stat(p)
	if err != nil || info.IsDir() {
		return "", ErrReceiptNotFound
	}
	return p, nil
}
