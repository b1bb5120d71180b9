// Package resume extracts text from uploaded PDF resumes and builds the
// review prompt submitted to the text-generation upstream.
package resume

import (
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// MaxUploadSize is the resume upload cap. Checked by the handler before
// any parsing is attempted.
const MaxUploadSize = 5 << 20

// Parser extracts plain text from PDF bytes.
type Parser struct{}

func (Parser) ExtractText(r io.ReaderAt, size int64) (string, error) {
	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	textReader, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract text: %w", err)
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, textReader); err != nil {
		return "", fmt.Errorf("failed to read extracted text: %w", err)
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("no text found in pdf")
	}
	return text, nil
}

// ReviewPrompt embeds the extracted resume text in the fixed review
// template.
func ReviewPrompt(text string) string {
	return "Review the following resume and provide constructive feedback on its strengths, " +
		"weaknesses, and areas for improvement. Resume Content:\n\n" + text
}
