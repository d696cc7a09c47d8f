// Package ipc implements the JSON request/response protocol spoken between
// the host and format plugins: one request object on the plugin's input,
// one response object on its output.
package ipc

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Request is the incoming JSON request from the host.
type Request struct {
	Command string                 `json:"command"`
	Args    map[string]interface{} `json:"args,omitempty"`
}

// Response is the outgoing JSON response to the host.
type Response struct {
	Status string      `json:"status"`
	Result interface{} `json:"result,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// Response statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// DetectResult is the result of a detect command.
type DetectResult struct {
	Detected bool   `json:"detected"`
	Format   string `json:"format,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// IngestResult is the result of an ingest command.
type IngestResult struct {
	ArtifactID string            `json:"artifact_id"`
	BlobSHA256 string            `json:"blob_sha256"`
	SizeBytes  int64             `json:"size_bytes"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// EnumerateResult is the result of an enumerate command.
type EnumerateResult struct {
	Entries []EnumerateEntry `json:"entries"`
}

// EnumerateEntry represents a file entry in enumeration.
type EnumerateEntry struct {
	Path      string            `json:"path"`
	SizeBytes int64             `json:"size_bytes"`
	IsDir     bool              `json:"is_dir"`
	ModTime   string            `json:"mod_time,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Conn carries one request/response exchange.
type Conn struct {
	in  io.Reader
	out io.Writer
}

// NewConn returns a Conn reading from in and writing to out.
func NewConn(in io.Reader, out io.Writer) *Conn {
	return &Conn{in: in, out: out}
}

// Stdio returns a Conn on the process's stdin and stdout.
func Stdio() *Conn {
	return NewConn(os.Stdin, os.Stdout)
}

// ReadRequest reads and decodes one request.
func (c *Conn) ReadRequest() (*Request, error) {
	var req Request
	if err := json.NewDecoder(c.in).Decode(&req); err != nil {
		return nil, fmt.Errorf("failed to decode request: %w", err)
	}
	return &req, nil
}

// Respond writes a success response with the given result.
func (c *Conn) Respond(result interface{}) error {
	resp := Response{
		Status: StatusOK,
		Result: result,
	}
	if err := json.NewEncoder(c.out).Encode(resp); err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	return nil
}

// RespondError writes an error response.
func (c *Conn) RespondError(msg string) error {
	resp := Response{
		Status: StatusError,
		Error:  msg,
	}
	if err := json.NewEncoder(c.out).Encode(resp); err != nil {
		return fmt.Errorf("failed to encode error response: %w", err)
	}
	return nil
}

// RespondErrorf writes a formatted error response.
func (c *Conn) RespondErrorf(format string, args ...interface{}) error {
	return c.RespondError(fmt.Sprintf(format, args...))
}

// HandlerFunc handles one command.
type HandlerFunc func(args map[string]interface{}) (interface{}, error)

// Handlers maps command names to handlers.
type Handlers map[string]HandlerFunc

// Commands returns the command names in sorted order.
func (h Handlers) Commands() []string {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Serve reads one request, dispatches it and writes the response. Handler
// errors become error responses; the returned error is non-nil whenever an
// error response was sent or the exchange itself failed.
func (c *Conn) Serve(handlers Handlers) error {
	req, err := c.ReadRequest()
	if err != nil {
		if rerr := c.RespondError(err.Error()); rerr != nil {
			return rerr
		}
		return err
	}

	h, ok := handlers[req.Command]
	if !ok {
		err := fmt.Errorf("unknown command: %s (supported: %s)", req.Command, strings.Join(handlers.Commands(), ", "))
		if rerr := c.RespondError(err.Error()); rerr != nil {
			return rerr
		}
		return err
	}

	result, err := h(req.Args)
	if err != nil {
		if rerr := c.RespondError(err.Error()); rerr != nil {
			return rerr
		}
		return err
	}
	return c.Respond(result)
}
