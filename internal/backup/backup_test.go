package backup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriveFileID(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		wantID string
		wantOK bool
	}{
		{
			name:   "share link",
			url:    "https://drive.google.com/file/d/1AbCdEf/view?usp=sharing",
			wantID: "1AbCdEf",
			wantOK: true,
		},
		{
			name:   "open link with id query",
			url:    "https://drive.google.com/open?id=1XyZ",
			wantID: "1XyZ",
			wantOK: true,
		},
		{
			name:   "ordinary url",
			url:    "https://example.com/resume.pdf",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := driveFileID(tt.url)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestDriveDirectDownloadURL(t *testing.T) {
	direct, ok := driveDirectDownloadURL("https://drive.google.com/file/d/1AbCdEf/view")
	require.True(t, ok)
	assert.Equal(t, "https://drive.google.com/uc?export=download&id=1AbCdEf", direct)

	_, ok = driveDirectDownloadURL("https://example.com/resume.pdf")
	assert.False(t, ok)
}

func TestParseDriveConfirmPageForm(t *testing.T) {
	page := `<html><body>
		<form id="download-form" action="https://drive.usercontent.google.com/download" method="get">
			<input type="hidden" name="id" value="1AbCdEf">
			<input type="hidden" name="confirm" value="t">
			<input type="hidden" name="uuid" value="u-1">
		</form>
	</body></html>`

	base, _ := url.Parse("https://drive.google.com/uc?export=download&id=1AbCdEf")
	confirmed, err := parseDriveConfirmPage([]byte(page), base)
	require.NoError(t, err)

	parsed, err := url.Parse(confirmed)
	require.NoError(t, err)
	assert.Equal(t, "drive.usercontent.google.com", parsed.Host)
	assert.Equal(t, "1AbCdEf", parsed.Query().Get("id"))
	assert.Equal(t, "t", parsed.Query().Get("confirm"))
}

func TestParseDriveConfirmPageAnchor(t *testing.T) {
	page := `<html><body>
		<a id="uc-download-link" href="/uc?export=download&amp;confirm=abcd&amp;id=1AbCdEf">Download anyway</a>
	</body></html>`

	base, _ := url.Parse("https://drive.google.com/uc?export=download&id=1AbCdEf")
	confirmed, err := parseDriveConfirmPage([]byte(page), base)
	require.NoError(t, err)
	assert.Equal(t, "https://drive.google.com/uc?export=download&confirm=abcd&id=1AbCdEf", confirmed)
}

func TestParseDriveConfirmPageMissingForm(t *testing.T) {
	_, err := parseDriveConfirmPage([]byte("<html><body>nothing here</body></html>"), nil)
	assert.Error(t, err)
}

func TestBackupLocalFile(t *testing.T) {
	srcDir := t.TempDir()
	original := filepath.Join(srcDir, "alice_chen.pdf")
	require.NoError(t, os.WriteFile(original, []byte("%PDF-1.4 fake"), 0o644))

	svc := NewService(t.TempDir())
	stored, err := svc.Backup(context.Background(), "cake", original)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stored, filepath.Join(svc.Root(), "cake")))
	assert.True(t, strings.HasSuffix(stored, "_alice_chen.pdf"))

	data, err := os.ReadFile(stored)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 fake"), data)
}

func TestBackupLocalFileMissing(t *testing.T) {
	svc := NewService(t.TempDir())
	_, err := svc.Backup(context.Background(), "cake", filepath.Join(t.TempDir(), "nope.pdf"))
	assert.Error(t, err)
}

func TestBackupURLDownload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4 remote"))
	}))
	defer server.Close()

	svc := NewService(t.TempDir())
	stored, err := svc.Backup(context.Background(), "lrs", server.URL+"/files/bob_lin.pdf")
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(stored, "_bob_lin.pdf"))
	data, err := os.ReadFile(stored)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 remote"), data)
}

func TestBackupURLInfersExtensionFromContentType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf; charset=binary")
		_, _ = w.Write([]byte("%PDF-1.4"))
	}))
	defer server.Close()

	svc := NewService(t.TempDir())
	stored, err := svc.Backup(context.Background(), "cake", server.URL+"/download")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(stored, ".pdf"), "got %s", stored)
}

func TestBackupURLServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	svc := NewService(t.TempDir())
	_, err := svc.Backup(context.Background(), "cake", server.URL+"/missing.pdf")
	assert.Error(t, err)
}

func TestSanitizeComponent(t *testing.T) {
	assert.Equal(t, "a_b_c", sanitizeComponent("a/b c"))
	assert.Equal(t, "unknown", sanitizeComponent("  "))
}

func TestURLStemAndExtension(t *testing.T) {
	assert.Equal(t, "resume", urlStem("https://example.com/"))
	assert.Equal(t, "cv", urlStem("https://example.com/files/cv.pdf"))
	assert.Equal(t, "1AbCdEf", urlStem("https://drive.google.com/file/d/1AbCdEf/view"))

	assert.Equal(t, ".pdf", urlExtension("https://example.com/cv.pdf", ""))
	assert.Equal(t, ".docx", urlExtension("https://example.com/download",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document"))
	assert.Equal(t, "", urlExtension("https://example.com/download", "application/x-unknown"))
}
