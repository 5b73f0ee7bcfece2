package file

import (
	"testing"

	"github.com/jobboard-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestContentTypeFromName(t *testing.T) {
	cases := map[string]string{
		"cv.pdf":      "application/pdf",
		"CV.PDF":      "application/pdf",
		"resume.doc":  "application/msword",
		"resume.docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"logo.png":    "image/png",
		"logo.jpg":    "image/jpeg",
		"photo.jpeg":  "image/jpeg",
		"notes.txt":   "application/octet-stream",
	}
	for name, want := range cases {
		assert.Equal(t, want, contentTypeFromName(name), name)
	}
}

func TestCheckContentType(t *testing.T) {
	assert.NoError(t, checkContentType(domain.FileKindCV, "application/pdf"))
	assert.NoError(t, checkContentType(domain.FileKindCV, "application/msword"))
	assert.NoError(t, checkContentType(domain.FileKindLogo, "image/png"))
	assert.NoError(t, checkContentType(domain.FileKindOther, "text/plain"))

	err := checkContentType(domain.FileKindCV, "image/png")
	assert.ErrorIs(t, err, domain.ErrBadRequest)
	err = checkContentType(domain.FileKindLogo, "application/pdf")
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "cv.pdf", sanitizeFilename("../../etc/cv.pdf"))
	assert.Equal(t, "my_r_sum_.pdf", sanitizeFilename("my résumé.pdf"))
	assert.Equal(t, "_", sanitizeFilename(""))
}
