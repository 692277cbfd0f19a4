// Package mailfile reads raw RFC 5322 email files (.eml) for the import path.
package mailfile

import (
	"bufio"
	"fmt"
	"io"
	"mime"
	"net/mail"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jobtrail/jobtrail/internal/model"
)

// maxBodyBytes caps how much of a message body is read. Job emails are
// short; anything beyond this is attachments or HTML boilerplate.
const maxBodyBytes = 256 * 1024

// Read parses one .eml file into an EmailMessage. Only the plain text of
// the body is kept; MIME multipart structure is not unpacked.
func Read(path string) (*model.EmailMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	msg, err := mail.ReadMessage(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	body, err := io.ReadAll(io.LimitReader(msg.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read body of %s: %w", path, err)
	}

	return &model.EmailMessage{
		Subject: decodeHeader(msg.Header.Get("Subject")),
		Sender:  decodeHeader(msg.Header.Get("From")),
		Body:    string(body),
	}, nil
}

// List returns the .eml files directly under dir, sorted by name so imports
// are deterministic.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".eml") {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}

	sort.Strings(paths)
	return paths, nil
}

// decodeHeader unpacks RFC 2047 encoded words; a header that fails to decode
// is returned as written.
func decodeHeader(value string) string {
	decoded, err := new(mime.WordDecoder).DecodeHeader(value)
	if err != nil {
		return value
	}
	return decoded
}
