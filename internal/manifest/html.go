package manifest

import (
	"html/template"
	"io"
	"os"
	"path/filepath"
)

// FileName is the name of the manifest document inside the download folder.
const FileName = "MANIFEST.HTML"

var manifestTmpl = template.Must(template.New("manifest").Parse(`<!DOCTYPE html>
<html>
<head><title>{{.Title}}</title></head>
<body>
<h2>{{.Title}}</h2>
<p>Total files: {{len .Entries}}</p>
<table border="1">
<tr><th>URI</th><th>File</th><th>Access</th><th>Status</th><th>Logged In User</th></tr>
{{range .Entries}}<tr><td>{{.URI}}</td><td>{{.File}}</td><td>PUBLIC</td><td>OK</td><td>anonymous</td></tr>
{{end}}</table>
</body>
</html>
`))

// Write renders the manifest document for the given entries. The document is
// informational only; nothing reads it back.
func Write(w io.Writer, title string, entries []Entry) error {
	return manifestTmpl.Execute(w, struct {
		Title   string
		Entries []Entry
	}{title, entries})
}

// WriteFile writes MANIFEST.HTML into dir, which must already exist.
func WriteFile(dir, title string, entries []Entry) error {
	f, err := os.Create(filepath.Join(dir, FileName))
	if err != nil {
		return err
	}
	if err := Write(f, title, entries); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
