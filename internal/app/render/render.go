package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"path/filepath"

	"github.com/spf13/afero"

	"logviewer/internal/app/errors"
	"logviewer/internal/app/logbook"
	"logviewer/internal/config/logger"
)

const templatePath = "templates/logs.html.tmpl"

//go:embed templates/logs.html.tmpl
var templateFS embed.FS

//go:generate mockgen -source=render.go -destination=render_mock.go -package=render

// Renderer turns rendered log rows into an output format
type Renderer interface {
	HTML(w io.Writer, userID logbook.UserID, rows []logbook.Row) error
	Export(path string, userID logbook.UserID, rows []logbook.Row) error
	Table(w io.Writer, rows []logbook.Row, full bool) error
}

type renderer struct {
	fs        afero.Fs
	formatter *logbook.Formatter
	page      *template.Template
	width     func() int
	log       logger.Logger
}

// NewRenderer creates a renderer writing exports through fs
func NewRenderer(fs afero.Fs, formatter *logbook.Formatter, log logger.Logger) (Renderer, error) {
	content, err := templateFS.ReadFile(templatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}

	page, err := template.New("logs.html").Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	return &renderer{
		fs:        fs,
		formatter: formatter,
		page:      page,
		width:     terminalWidth,
		log:       log,
	}, nil
}

type pageData struct {
	UserID    string
	Generated string
	Count     int
	Clamp     int
	Rows      []pageRow
}

type pageRow struct {
	Header  bool
	Date    string
	Time    string
	Class   string
	Level   string
	Age     string
	Message template.HTML
}

// HTML writes the standalone log page
func (r *renderer) HTML(w io.Writer, userID logbook.UserID, rows []logbook.Row) error {
	data := pageData{
		UserID:    userID.String(),
		Generated: r.formatter.Stamp(r.formatter.Now()),
		Clamp:     r.formatter.Clamp(),
		Rows:      make([]pageRow, 0, len(rows)),
	}

	for _, row := range rows {
		if row.IsHeader() {
			data.Rows = append(data.Rows, pageRow{Header: true, Date: row.Date})
			continue
		}

		data.Count++
		data.Rows = append(data.Rows, pageRow{
			Date:    row.Date,
			Time:    row.Time,
			Class:   row.Class,
			Level:   row.Entry.Level,
			Age:     r.formatter.Age(row.Entry.Time),
			Message: template.HTML(logbook.Escape(row.Entry.Message)), //nolint:gosec // escaped above
		})
	}

	return r.page.Execute(w, data)
}

// Export writes the log page to path
func (r *renderer) Export(path string, userID logbook.UserID, rows []logbook.Row) error {
	if path == "" {
		return errors.ErrExportPathNeeded
	}

	var buf bytes.Buffer
	if err := r.HTML(&buf, userID, rows); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := r.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := afero.WriteFile(r.fs, path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	r.log.Info().Str("path", path).Int("rows", len(rows)).Msg("Exported logs")

	return nil
}
