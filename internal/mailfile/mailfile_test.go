package mailfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestRead(t *testing.T) {
	raw := "From: Google Careers <careers@google.com>\n" +
		"Subject: Thank you for applying to Google\n" +
		"\n" +
		"We received your application and will be in touch.\n"
	path := writeFile(t, t.TempDir(), "receipt.eml", raw)

	msg, err := Read(path)
	require.NoError(t, err)

	assert.Equal(t, "Thank you for applying to Google", msg.Subject)
	assert.Equal(t, "Google Careers <careers@google.com>", msg.Sender)
	assert.Equal(t, "We received your application and will be in touch.\n", msg.Body)
}

func TestRead_DecodesEncodedSubject(t *testing.T) {
	raw := "From: hr@initech.com\n" +
		"Subject: =?UTF-8?Q?Entretien_pr=C3=A9vu?=\n" +
		"\n" +
		"Bonjour.\n"
	path := writeFile(t, t.TempDir(), "encoded.eml", raw)

	msg, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "Entretien prévu", msg.Subject)
}

func TestRead_MissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.eml"))
	require.Error(t, err)
}

func TestRead_NotAnEmail(t *testing.T) {
	path := writeFile(t, t.TempDir(), "junk.eml", "this is not a mail header block")

	_, err := Read(path)
	require.Error(t, err)
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.eml", "From: a@b.c\n\nx\n")
	writeFile(t, dir, "a.eml", "From: a@b.c\n\nx\n")
	writeFile(t, dir, "c.EML", "From: a@b.c\n\nx\n")
	writeFile(t, dir, "notes.txt", "not mail")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.eml"), 0750))

	paths, err := List(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.eml"),
		filepath.Join(dir, "b.eml"),
		filepath.Join(dir, "c.EML"),
	}, paths)
}

func TestList_MissingDirectory(t *testing.T) {
	_, err := List(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
}
