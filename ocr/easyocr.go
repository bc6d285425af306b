package ocr

import (
	"bufio"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
)

//go:embed easyocr_bridge.py
var bridgeScript string

// EasyOCR drives an EasyOCR reader running in a Python child process.
// The reader is built once, for a single language, when the engine starts.
type EasyOCR struct {
	language string
	cmd      *exec.Cmd
	stdin    io.WriteCloser
	stdout   *bufio.Reader
	closed   bool
}

type easyOCRConfig struct {
	python  string
	stderr  io.Writer
	command func(ctx context.Context, language string) *exec.Cmd
}

// EasyOCROption configures an EasyOCR engine.
type EasyOCROption func(*easyOCRConfig)

// WithPython sets the Python interpreter. Default is "python3" from PATH.
func WithPython(path string) EasyOCROption {
	return func(c *easyOCRConfig) {
		if path != "" {
			c.python = path
		}
	}
}

// WithStderr redirects the child process's diagnostic output. Default is
// os.Stderr.
func WithStderr(w io.Writer) EasyOCROption {
	return func(c *easyOCRConfig) { c.stderr = w }
}

type bridgeRequest struct {
	Path string `json:"path"`
}

type bridgeResponse struct {
	Ready   bool     `json:"ready"`
	Results []string `json:"results"`
	Error   string   `json:"error"`
}

// NewEasyOCR starts the Python bridge for language and waits until the
// EasyOCR reader has loaded. Cancelling ctx kills the process.
func NewEasyOCR(ctx context.Context, language string, opts ...EasyOCROption) (*EasyOCR, error) {
	cfg := easyOCRConfig{python: "python3", stderr: os.Stderr}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.command == nil {
		python := cfg.python
		cfg.command = func(ctx context.Context, language string) *exec.Cmd {
			return exec.CommandContext(ctx, python, "-u", "-c", bridgeScript, language)
		}
	}

	cmd := cfg.command(ctx, language)
	cmd.Stderr = cfg.stderr
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open bridge stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open bridge stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start easyocr bridge: %w", err)
	}

	e := &EasyOCR{
		language: language,
		cmd:      cmd,
		stdin:    stdin,
		stdout:   bufio.NewReader(stdout),
	}

	resp, err := e.receive()
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("easyocr bridge failed to start: %w", err)
	}
	if resp.Error != "" {
		e.Close()
		return nil, &EngineError{Engine: e.Name(), Message: resp.Error}
	}
	if !resp.Ready {
		e.Close()
		return nil, fmt.Errorf("easyocr bridge sent unexpected greeting")
	}
	return e, nil
}

// EasyOCRFactory returns a Factory that starts EasyOCR engines with opts.
func EasyOCRFactory(opts ...EasyOCROption) Factory {
	return func(ctx context.Context, language string) (Engine, error) {
		e, err := NewEasyOCR(ctx, language, opts...)
		if err != nil {
			return nil, err
		}
		return e, nil
	}
}

// Name returns "easyocr".
func (e *EasyOCR) Name() string { return "easyocr" }

// Language returns the language the reader was built for.
func (e *EasyOCR) Language() string { return e.language }

// ReadText asks the reader to recognize imagePath and returns EasyOCR's JSON
// records unchanged.
func (e *EasyOCR) ReadText(ctx context.Context, imagePath string) ([]string, error) {
	if e.closed {
		return nil, ErrEngineClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req, err := json.Marshal(bridgeRequest{Path: imagePath})
	if err != nil {
		return nil, err
	}
	if _, err := e.stdin.Write(append(req, '\n')); err != nil {
		return nil, fmt.Errorf("failed to send request to easyocr bridge: %w", err)
	}

	resp, err := e.receive()
	if err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, &EngineError{Engine: e.Name(), Path: imagePath, Message: resp.Error}
	}
	if resp.Results == nil {
		return []string{}, nil
	}
	return resp.Results, nil
}

// receive reads one response line from the bridge.
func (e *EasyOCR) receive() (bridgeResponse, error) {
	var resp bridgeResponse
	line, err := e.stdout.ReadBytes('\n')
	if err != nil {
		if err == io.EOF {
			return resp, fmt.Errorf("easyocr bridge exited unexpectedly")
		}
		return resp, fmt.Errorf("failed to read from easyocr bridge: %w", err)
	}
	if err := json.Unmarshal(line, &resp); err != nil {
		return resp, fmt.Errorf("malformed easyocr bridge response %.80q: %w", line, err)
	}
	return resp, nil
}

// Close stops the bridge and waits for the process to exit.
func (e *EasyOCR) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	e.stdin.Close()
	if err := e.cmd.Wait(); err != nil {
		return fmt.Errorf("easyocr bridge: %w", err)
	}
	return nil
}
