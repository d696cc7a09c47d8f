package ipc

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// probeSize is how much of a file content probes see.
const probeSize = 64 * 1024

// CheckExtension checks if a file has any of the specified extensions.
// Extensions should be provided with dots (e.g., ".conllu").
func CheckExtension(path string, extensions ...string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, validExt := range extensions {
		if ext == strings.ToLower(validExt) {
			return true
		}
	}
	return false
}

// ReadHead returns up to n bytes from the start of a file.
func ReadHead(path string, n int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, n)
	read, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return buf[:read], nil
}

// DetectByExtension performs standard extension-based detection.
func DetectByExtension(path, formatName string, extensions ...string) *DetectResult {
	if CheckExtension(path, extensions...) {
		return &DetectResult{
			Detected: true,
			Format:   formatName,
			Reason:   fmt.Sprintf("%s file extension detected (%s)", formatName, strings.Join(extensions, ", ")),
		}
	}
	return &DetectResult{
		Detected: false,
		Reason:   fmt.Sprintf("not a %s file (extension mismatch)", formatName),
	}
}

// DetectSuccess returns a successful detection result.
func DetectSuccess(formatName, reason string) *DetectResult {
	return &DetectResult{
		Detected: true,
		Format:   formatName,
		Reason:   reason,
	}
}

// DetectFailure returns a failed detection result.
func DetectFailure(reason string) *DetectResult {
	return &DetectResult{
		Detected: false,
		Reason:   reason,
	}
}
