package internal_knowledge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rapidaai/avatar/pkg/commons"
)

func newTestLogger() commons.Logger {
	l, _ := commons.NewApplicationLogger()
	return l
}

func TestLoad_TextAndMarkdown(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "refunds.txt"), []byte("Refunds are accepted within 30 days."), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shipping.md"), []byte("Shipping takes 3-5 business days."), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.jpeg"), []byte{0xff, 0xd8}, 0o600))

	corpus, err := Load(newTestLogger(), dir)
	require.NoError(t, err)

	assert.Contains(t, corpus, "Document: refunds.txt")
	assert.Contains(t, corpus, "Refunds are accepted within 30 days.")
	assert.Contains(t, corpus, "Document: shipping.md")
	assert.NotContains(t, corpus, "ignored.jpeg")
}

func TestLoad_MissingDirIsEmptyCorpus(t *testing.T) {
	corpus, err := Load(newTestLogger(), filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, corpus)
}

func TestLoad_SkipsEmptyAndUnreadable(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.txt"), []byte("   \n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.pdf"), []byte("not a pdf"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "good.txt"), []byte("usable"), 0o600))

	corpus, err := Load(newTestLogger(), dir)
	require.NoError(t, err)

	assert.NotContains(t, corpus, "empty.txt")
	assert.NotContains(t, corpus, "broken.pdf")
	assert.Contains(t, corpus, "usable")
}
