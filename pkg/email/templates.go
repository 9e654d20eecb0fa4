package email

import (
	"embed"
	"html/template"
	"strings"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

const previewLength = 280

var templateFuncs = template.FuncMap{
	"date":      formatDate,
	"subjectOr": subjectOr,
	"preview":   preview,
}

// loadTemplates email template'lerini yardımcı fonksiyonlarla yükler
func loadTemplates() (*template.Template, error) {
	return template.New("email").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
}

func formatDate(t time.Time, layout string) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.Format(layout)
}

func subjectOr(subject string) string {
	if s := strings.TrimSpace(subject); s != "" {
		return s
	}
	return "(no subject)"
}

// preview mesajı e-posta için kısaltır
func preview(message string) string {
	r := []rune(strings.TrimSpace(message))
	if len(r) <= previewLength {
		return string(r)
	}
	return strings.TrimSpace(string(r[:previewLength])) + "..."
}
