// Package backup archives resume artifacts referenced by imported records.
// Artifacts may be remote URLs (including cloud-drive share links) or local
// files; either way a copy lands under a per-source directory with a
// timestamped name.
package backup

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const downloadTimeout = 60 * time.Second

// extensionByContentType maps common resume content types to a filename
// extension for URLs that do not carry one.
var extensionByContentType = map[string]string{
	"application/pdf":    ".pdf",
	"application/msword": ".doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
	"text/plain": ".txt",
	"image/png":  ".png",
	"image/jpeg": ".jpg",
}

// Service copies resume artifacts into a local backup tree.
type Service struct {
	root   string
	client *resty.Client
	log    *slog.Logger
}

// NewService creates a backup service rooted at dir.
func NewService(dir string) *Service {
	client := resty.New().
		SetTimeout(downloadTimeout).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(10))
	return &Service{
		root:   dir,
		client: client,
		log:    slog.Default(),
	}
}

// Root returns the backup tree root.
func (s *Service) Root() string {
	return s.root
}

// Backup archives one artifact for the given source and returns the path of
// the stored copy. URLs are downloaded, local paths copied.
func (s *Service) Backup(ctx context.Context, source, resumeFile string) (string, error) {
	if isURL(resumeFile) {
		return s.downloadURL(ctx, source, resumeFile)
	}
	return s.copyLocal(source, resumeFile)
}

func isURL(v string) bool {
	return strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://")
}

func (s *Service) downloadURL(ctx context.Context, source, rawURL string) (string, error) {
	target := rawURL
	if direct, ok := driveDirectDownloadURL(rawURL); ok {
		target = direct
	}

	resp, err := s.client.R().SetContext(ctx).Get(target)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", rawURL, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("download %s: status %s", rawURL, resp.Status())
	}

	body := resp.Body()
	contentType := resp.Header().Get("Content-Type")

	// Large drive files answer the direct-download URL with a virus-scan
	// confirmation page instead of the file. Follow its embedded form once.
	if isDriveConfirmPage(contentType, body) {
		confirmURL, err := parseDriveConfirmPage(body, resp.RawResponse.Request.URL)
		if err != nil {
			return "", fmt.Errorf("resolve drive confirmation for %s: %w", rawURL, err)
		}
		resp, err = s.client.R().SetContext(ctx).Get(confirmURL)
		if err != nil {
			return "", fmt.Errorf("download %s: %w", rawURL, err)
		}
		if resp.IsError() {
			return "", fmt.Errorf("download %s: status %s", rawURL, resp.Status())
		}
		body = resp.Body()
		contentType = resp.Header().Get("Content-Type")
	}

	name := backupName(urlStem(rawURL), urlExtension(rawURL, contentType))
	dest, err := s.destPath(source, name)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(dest, body, 0o644); err != nil {
		return "", fmt.Errorf("write backup %s: %w", dest, err)
	}
	return dest, nil
}

func (s *Service) copyLocal(source, localPath string) (string, error) {
	in, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open resume file: %w", err)
	}
	defer in.Close()

	base := filepath.Base(localPath)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	dest, err := s.destPath(source, backupName(stem, ext))
	if err != nil {
		return "", err
	}
	out, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("create backup %s: %w", dest, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return "", fmt.Errorf("copy to %s: %w", dest, err)
	}
	return dest, nil
}

func (s *Service) destPath(source, name string) (string, error) {
	dir := filepath.Join(s.root, sanitizeComponent(source))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}
	return filepath.Join(dir, name), nil
}

func backupName(stem, ext string) string {
	stamp := time.Now().UTC().Format("20060102_150405")
	return stamp + "_" + sanitizeComponent(stem) + ext
}

// sanitizeComponent keeps backup path components free of separators and
// other characters that complicate filesystem layouts.
func sanitizeComponent(v string) string {
	replacer := strings.NewReplacer(
		"/", "_", "\\", "_", ":", "_", "?", "_", "&", "_", "=", "_", " ", "_")
	cleaned := replacer.Replace(strings.TrimSpace(v))
	if cleaned == "" {
		return "unknown"
	}
	return cleaned
}

// urlStem derives a filename stem from the URL path, falling back to
// "resume" for opaque URLs like drive share links.
func urlStem(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "resume"
	}
	base := path.Base(parsed.Path)
	if base == "" || base == "/" || base == "." {
		return "resume"
	}
	if id, ok := driveFileID(rawURL); ok {
		return id
	}
	ext := path.Ext(base)
	return strings.TrimSuffix(base, ext)
}

// urlExtension prefers the extension already on the URL path and otherwise
// infers one from the response content type.
func urlExtension(rawURL, contentType string) string {
	if parsed, err := url.Parse(rawURL); err == nil {
		if _, ok := driveFileID(rawURL); !ok {
			if ext := path.Ext(parsed.Path); ext != "" {
				return ext
			}
		}
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return extensionByContentType[mediaType]
}
