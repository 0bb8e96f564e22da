// Package output writes the JSON envelope every command prints on stdout.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Envelope is the single JSON document a command prints. Data is null on
// failure and Error is null on success.
type Envelope struct {
	Success bool    `json:"success"`
	Data    any     `json:"data"`
	Error   *string `json:"error"`
}

func Success(w io.Writer, data any) error {
	return write(w, Envelope{Success: true, Data: data})
}

func Failure(w io.Writer, err error) error {
	msg := err.Error()
	return write(w, Envelope{Success: false, Error: &msg})
}

// write encodes env in full before touching w, so a value that fails to
// marshal leaves w empty for the failure envelope that follows.
func write(w io.Writer, env Envelope) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	// Korean text and URLs are printed as-is.
	enc.SetEscapeHTML(false)
	if err := enc.Encode(env); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}
