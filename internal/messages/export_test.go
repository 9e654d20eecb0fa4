package messages

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"brotech_admin/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	msgs := []model.ContactMessage{
		{
			ID:        "abc",
			Name:      "Jo, Jr.",
			Email:     "jo@acme.io",
			Subject:   "Quote",
			Message:   `He said "hi"`,
			CreatedAt: time.Date(2024, 6, 1, 12, 30, 0, 0, time.FixedZone("TRT", 3*3600)),
		},
		{ID: "def", Name: "Ann", Email: "ann@x.io", Subject: "", Message: "line1\nline2", CreatedAt: base},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, msgs))

	lines := strings.SplitN(buf.String(), "\n", 3)
	require.Len(t, lines, 3)
	assert.Equal(t, "ID,Name,Email,Subject,Message,Date Received", lines[0])
	assert.Equal(t, `"abc","Jo, Jr.","jo@acme.io","Quote","He said ""hi""","2024-06-01T09:30:00.000Z"`, lines[1])
	assert.Equal(t, "\"def\",\"Ann\",\"ann@x.io\",\"\",\"line1\nline2\",\"2024-06-01T09:00:00.000Z\"", lines[2])
	assert.False(t, strings.HasSuffix(buf.String(), "\n"))
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, WriteCSV(&buf, nil), ErrNothingToExport)
	assert.Zero(t, buf.Len())
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2024, 3, 5, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "messages_export_2024-03-05.csv", ExportFilename(now))

	// UTC tarihi kullanılır
	late := time.Date(2024, 3, 6, 1, 0, 0, 0, time.FixedZone("TRT", 3*3600))
	assert.Equal(t, "messages_export_2024-03-05.csv", ExportFilename(late))
}
