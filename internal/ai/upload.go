package ai

import (
	"bytes"
	"encoding/base64"
	"errors"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrEmptyDocument is returned when an upload carries nothing to analyse.
var ErrEmptyDocument = errors.New("ai: document has no readable content")

// Attachment is an uploaded document prepared for a prompt. PDFs and text
// travel as Text; images travel base64 encoded in Image.
type Attachment struct {
	FileName string
	MimeType string
	Text     string
	Image    string
}

// DeriveAttachment converts raw upload bytes into an Attachment.
func DeriveAttachment(fileName string, data []byte, mime string) (Attachment, error) {
	if mime == "" {
		mime = MimeTypeFromName(fileName)
	}
	doc := Attachment{FileName: fileName, MimeType: mime}

	lower := strings.ToLower(mime)
	switch {
	case strings.Contains(lower, "pdf"):
		text, err := extractTextFromPDF(data)
		if err != nil {
			return Attachment{}, err
		}
		doc.Text = text
	case strings.HasPrefix(lower, "image/"):
		doc.Image = base64.StdEncoding.EncodeToString(data)
	default:
		doc.Text = string(data)
	}

	if strings.TrimSpace(doc.Text) == "" && doc.Image == "" {
		return Attachment{}, ErrEmptyDocument
	}
	return doc, nil
}

func extractTextFromPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var builder strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", err
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}
	return builder.String(), nil
}

// MimeTypeFromName guesses a MIME type from a file extension.
func MimeTypeFromName(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".txt":
		return "text/plain"
	case ".csv":
		return "text/csv"
	case ".pdf":
		return "application/pdf"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
