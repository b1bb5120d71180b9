package resume_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"quickai-backend/internal/resume"
)

func TestReviewPrompt(t *testing.T) {
	prompt := resume.ReviewPrompt("Jane Doe, software engineer")

	assert.True(t, strings.HasPrefix(prompt, "Review the following resume"))
	assert.Contains(t, prompt, "strengths, weaknesses, and areas for improvement")
	assert.True(t, strings.HasSuffix(prompt, "Jane Doe, software engineer"))
}

func TestMaxUploadSize(t *testing.T) {
	assert.Equal(t, int64(5*1024*1024), int64(resume.MaxUploadSize))
}
