package filestorage

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", name)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	w.Close()

	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatalf("ParseMultipartForm: %v", err)
	}
	return req.MultipartForm.File["file"][0]
}

func TestSaveMediaSniffsImage(t *testing.T) {
	dir := t.TempDir()
	ls, err := NewLocalStorage(dir, "/uploads", 0)
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}

	// The client-supplied extension is ignored in favour of the content.
	info, err := ls.SaveMedia(fileHeader(t, "photo.txt", pngHeader), "highlights")
	if err != nil {
		t.Fatalf("SaveMedia: %v", err)
	}
	if info.MimeType != "image/png" {
		t.Fatalf("mime = %q", info.MimeType)
	}
	if !strings.HasPrefix(info.URL, "/uploads/highlights/") || !strings.HasSuffix(info.URL, ".png") {
		t.Fatalf("url = %q", info.URL)
	}
	data, err := os.ReadFile(ls.GetFullPath(info.URL))
	if err != nil || !bytes.Equal(data, pngHeader) {
		t.Fatalf("stored content mismatch: %v", err)
	}

	if err := ls.DeleteFile(info.URL); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	if _, err := os.Stat(info.Path); !os.IsNotExist(err) {
		t.Fatalf("file should be gone, stat err = %v", err)
	}
}

func TestSaveMediaRejectsNonMedia(t *testing.T) {
	ls, _ := NewLocalStorage(t.TempDir(), "", 0)
	_, err := ls.SaveMedia(fileHeader(t, "notes.png", []byte("just some text, not a picture")), "")
	if !errors.Is(err, ErrUnsupportedMediaType) {
		t.Fatalf("expected ErrUnsupportedMediaType, got %v", err)
	}
}

func TestSaveMediaRejectsOversize(t *testing.T) {
	ls, _ := NewLocalStorage(t.TempDir(), "", 8)
	_, err := ls.SaveMedia(fileHeader(t, "big.png", pngHeader), "")
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
}

func TestSaveMediaRejectsTraversal(t *testing.T) {
	ls, _ := NewLocalStorage(t.TempDir(), "", 0)
	if _, err := ls.SaveMedia(fileHeader(t, "a.png", pngHeader), "../escape"); !errors.Is(err, ErrInvalidPath) {
		t.Fatalf("expected ErrInvalidPath, got %v", err)
	}
	if got := ls.GetFullPath("/uploads/../../etc/passwd"); got != "" {
		t.Fatalf("traversal URL resolved to %q", got)
	}
	if got := ls.GetFullPath("https://elsewhere/x.png"); got != "" {
		t.Fatalf("foreign URL resolved to %q", got)
	}
}
