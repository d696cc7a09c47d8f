package ipc

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Detect is the common detect handler for file-based formats. A file is
// detected when its extension matches or, failing that, when probe accepts
// the start of its content. probe may be nil.
func Detect(args map[string]interface{}, formatName string, extensions []string, probe func(head []byte) bool) (*DetectResult, error) {
	path, err := StringArg(args, "path")
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return DetectFailure(fmt.Sprintf("cannot stat: %v", err)), nil
	}
	if info.IsDir() {
		return DetectFailure("path is a directory"), nil
	}

	if CheckExtension(path, extensions...) {
		return DetectByExtension(path, formatName, extensions...), nil
	}

	if probe != nil {
		head, err := ReadHead(path, probeSize)
		if err != nil {
			return DetectFailure(fmt.Sprintf("cannot read file: %v", err)), nil
		}
		if probe(head) {
			return DetectSuccess(formatName, fmt.Sprintf("%s content detected", formatName)), nil
		}
	}

	return DetectFailure(fmt.Sprintf("not a %s file", formatName)), nil
}

// Ingest reads the file named by args["path"], stores it as a blob under
// args["output_dir"] and reports its metadata. metadataFunc may add
// format-specific metadata and may be nil.
func Ingest(args map[string]interface{}, formatName string, metadataFunc func(path string, data []byte) map[string]string) (*IngestResult, error) {
	path, outputDir, err := PathAndOutputDir(args)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	hashHex, err := StoreBlob(outputDir, data)
	if err != nil {
		return nil, fmt.Errorf("failed to store blob: %w", err)
	}

	metadata := map[string]string{
		"format":        formatName,
		"original_name": filepath.Base(path),
	}
	if metadataFunc != nil {
		for k, v := range metadataFunc(path, data) {
			metadata[k] = v
		}
	}

	return &IngestResult{
		ArtifactID: ArtifactIDFromPath(path),
		BlobSHA256: hashHex,
		SizeBytes:  int64(len(data)),
		Metadata:   metadata,
	}, nil
}

// EnumerateSingleFile lists a single-file artifact.
func EnumerateSingleFile(args map[string]interface{}, formatName string) (*EnumerateResult, error) {
	path, err := StringArg(args, "path")
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat: %w", err)
	}

	return &EnumerateResult{
		Entries: []EnumerateEntry{
			{
				Path:      filepath.Base(path),
				SizeBytes: info.Size(),
				IsDir:     false,
				ModTime:   info.ModTime().UTC().Format(time.RFC3339),
				Metadata: map[string]string{
					"format": formatName,
				},
			},
		},
	}, nil
}
