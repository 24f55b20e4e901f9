// Package listing prints the resolved notes of an arrangement as text,
// through a text/template.
package listing

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/sompyler/sompyler"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type (
	Lister struct {
		Template *template.Template
	}

	// Measure is the template data of one measure.
	Measure struct {
		Index    int
		Start    float64
		Duration float64
		Length   int
		Pattern  string
	}

	// Data is what the templates are executed with.
	Data struct {
		Title    string
		Duration float64
		Measures []Measure
		Voices   []string
		Notes    []sompyler.ResolvedNote
	}
)

//go:embed templates/*
var templateFS embed.FS

// New returns a lister using the default templates.
func New() (*Lister, error) {
	tmpl, err := template.New("base").Funcs(funcs()).ParseFS(templateFS, "templates/*.*")
	if err != nil {
		return nil, fmt.Errorf(`could not create templates: %w`, err)
	}
	return &Lister{Template: tmpl}, nil
}

// NewFromTemplates returns a lister using the templates in directory.
func NewFromTemplates(directory string) (*Lister, error) {
	globPtrn := filepath.Join(directory, "*.*")
	tmpl, err := template.New("base").Funcs(funcs()).ParseGlob(globPtrn)
	if err != nil {
		return nil, fmt.Errorf(`could not create templates based on directory "%v": %w`, directory, err)
	}
	return &Lister{Template: tmpl}, nil
}

func funcs() template.FuncMap {
	caser := cases.Title(language.English)
	ret := sprig.TxtFuncMap()
	ret["title"] = caser.String
	ret["seconds"] = func(v float64) string { return fmt.Sprintf("%8.3f", v) }
	return ret
}

// NewData collects the template data of an arrangement.
func NewData(a *sompyler.Arrangement) (*Data, error) {
	notes, err := a.Notes()
	if err != nil {
		return nil, err
	}
	ret := &Data{Title: a.Title, Duration: a.Duration(), Voices: a.Voices(), Notes: notes}
	for i, m := range a.Measures {
		ret.Measures = append(ret.Measures, Measure{
			Index:    i + 1,
			Start:    m.Offset,
			Duration: m.Duration(),
			Length:   m.Length,
			Pattern:  m.Stress.String(),
		})
	}
	return ret, nil
}

// Write executes the template called name with the data of a.
func (l *Lister) Write(w io.Writer, name string, a *sompyler.Arrangement) error {
	data, err := NewData(a)
	if err != nil {
		return fmt.Errorf("listing %v: %w", name, err)
	}
	var b bytes.Buffer
	if err := l.Template.ExecuteTemplate(&b, name, data); err != nil {
		return fmt.Errorf(`could not execute template "%v": %w`, name, err)
	}
	if _, err := w.Write(b.Bytes()); err != nil {
		return fmt.Errorf("listing %v: %w", name, err)
	}
	return nil
}
