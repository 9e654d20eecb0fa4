package messages

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"time"

	"brotech_admin/internal/model"
)

var ErrNothingToExport = errors.New("no messages to export")

const csvHeader = "ID,Name,Email,Subject,Message,Date Received"

// ExportFilename uses the export date, not any message date.
func ExportFilename(now time.Time) string {
	return "messages_export_" + now.UTC().Format(time.DateOnly) + ".csv"
}

// WriteCSV writes msgs in the given order. Every field is quoted and
// embedded quotes are doubled; rows are separated by "\n".
func WriteCSV(w io.Writer, msgs []model.ContactMessage) error {
	if len(msgs) == 0 {
		return ErrNothingToExport
	}

	bw := bufio.NewWriter(w)
	bw.WriteString(csvHeader)
	for _, m := range msgs {
		bw.WriteByte('\n')
		fields := []string{
			m.ID,
			m.Name,
			m.Email,
			m.Subject,
			m.Message,
			m.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		}
		for i, f := range fields {
			if i > 0 {
				bw.WriteByte(',')
			}
			bw.WriteString(quote(f))
		}
	}
	return bw.Flush()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
