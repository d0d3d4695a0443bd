// Package editor holds the admin's working copy of the content document.
//
// A Workspace keeps every translation as an editable JSON tree keyed by
// language, tracks which language is being edited, and runs the strict
// normalizer over the whole copy before anything is saved. Edits address
// fields of the active translation by dotted path, e.g. "hero.title" or
// "guide.steps.0.commands".
package editor

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/ZacxDev/commands-site/content"
)

var (
	ErrInvalidLanguage = errors.New("invalid language code")
	ErrUnknownLanguage = errors.New("unknown language")
	ErrLastLanguage    = errors.New("the only language cannot be removed")
	ErrInvalidPath     = errors.New("invalid field path")
)

// Reader is the read side of the data store.
type Reader interface {
	Read() gjson.Result
}

// Saver is the write side of the data store.
type Saver interface {
	Write(payload any) error
}

type Workspace struct {
	languages       []string
	defaultLanguage string
	active          string
	translations    map[string][]byte
}

// Open starts a workspace from a normalized document, editing its default
// language.
func Open(doc content.Document) *Workspace {
	ws := &Workspace{
		languages:       append([]string(nil), doc.Languages...),
		defaultLanguage: doc.DefaultLanguage,
		active:          doc.DefaultLanguage,
		translations:    make(map[string][]byte, len(doc.Languages)),
	}
	for _, code := range doc.Languages {
		// A Translation holds only strings, bools and slices of them.
		data, _ := json.Marshal(doc.Translation(code))
		ws.translations[code] = data
	}
	return ws
}

// Load opens a workspace over whatever the store currently holds.
func Load(r Reader) *Workspace {
	return Open(content.ForDisplay(r.Read()))
}

func (ws *Workspace) Active() string {
	return ws.active
}

func (ws *Workspace) DefaultLanguage() string {
	return ws.defaultLanguage
}

func (ws *Workspace) Languages() []string {
	return append([]string(nil), ws.languages...)
}

// SetLanguage switches the active language.
func (ws *Workspace) SetLanguage(code string) error {
	normalized := content.NormalizeLanguageCode(code)
	if normalized == "" {
		return errors.Wrapf(ErrInvalidLanguage, "%q", code)
	}
	if _, ok := ws.translations[normalized]; !ok {
		return errors.Wrapf(ErrUnknownLanguage, "%q", normalized)
	}
	ws.active = normalized
	return nil
}

// AddLanguage adds code as a copy of the active translation and makes it
// active. Adding an existing language only switches to it.
func (ws *Workspace) AddLanguage(code string) error {
	normalized := content.NormalizeLanguageCode(code)
	if normalized == "" {
		return errors.Wrapf(ErrInvalidLanguage, "%q", code)
	}
	if _, ok := ws.translations[normalized]; !ok {
		ws.languages = append(ws.languages, normalized)
		ws.translations[normalized] = append([]byte(nil), ws.translations[ws.active]...)
	}
	ws.active = normalized
	return nil
}

// RemoveLanguage drops code and its translation. The default and active
// languages move to the first remaining language when they are removed.
func (ws *Workspace) RemoveLanguage(code string) error {
	normalized := content.NormalizeLanguageCode(code)
	if _, ok := ws.translations[normalized]; !ok || normalized == "" {
		return errors.Wrapf(ErrUnknownLanguage, "%q", code)
	}
	if len(ws.languages) <= 1 {
		return ErrLastLanguage
	}

	remaining := ws.languages[:0:0]
	for _, c := range ws.languages {
		if c != normalized {
			remaining = append(remaining, c)
		}
	}
	ws.languages = remaining
	delete(ws.translations, normalized)

	if ws.defaultLanguage == normalized {
		ws.defaultLanguage = ws.languages[0]
	}
	if ws.active == normalized {
		ws.active = ws.defaultLanguage
	}
	return nil
}

// SetDefault promotes the active language to default.
func (ws *Workspace) SetDefault() {
	ws.defaultLanguage = ws.active
}

// Get reads a field of the active translation.
func (ws *Workspace) Get(path string) gjson.Result {
	return gjson.GetBytes(ws.translations[ws.active], path)
}

// Set assigns value to a field of the active translation.
func (ws *Workspace) Set(path string, value any) error {
	if err := checkPath(path); err != nil {
		return err
	}
	updated, err := sjson.SetBytes(ws.translations[ws.active], path, value)
	if err != nil {
		return errors.Wrapf(err, "set %s", path)
	}
	ws.translations[ws.active] = updated
	return nil
}

// SetRaw assigns a JSON fragment to a field of the active translation.
func (ws *Workspace) SetRaw(path, raw string) error {
	if err := checkPath(path); err != nil {
		return err
	}
	if !gjson.Valid(raw) {
		return errors.Errorf("set %s: value is not valid JSON", path)
	}
	updated, err := sjson.SetRawBytes(ws.translations[ws.active], path, []byte(raw))
	if err != nil {
		return errors.Wrapf(err, "set %s", path)
	}
	ws.translations[ws.active] = updated
	return nil
}

// Delete removes a field of the active translation.
func (ws *Workspace) Delete(path string) error {
	if err := checkPath(path); err != nil {
		return err
	}
	updated, err := sjson.DeleteBytes(ws.translations[ws.active], path)
	if err != nil {
		return errors.Wrapf(err, "delete %s", path)
	}
	ws.translations[ws.active] = updated
	return nil
}

// Raw encodes the working copy in the document envelope, unnormalized.
func (ws *Workspace) Raw() ([]byte, error) {
	translations := make(map[string]json.RawMessage, len(ws.translations))
	for code, data := range ws.translations {
		translations[code] = data
	}
	raw, err := json.Marshal(struct {
		Languages       []string                   `json:"languages"`
		DefaultLanguage string                     `json:"defaultLanguage"`
		Translations    map[string]json.RawMessage `json:"translations"`
	}{ws.languages, ws.defaultLanguage, translations})
	return raw, errors.Wrap(err, "encode workspace")
}

// Document returns the working copy in its canonical, persistable form.
func (ws *Workspace) Document() (content.Document, error) {
	raw, err := ws.Raw()
	if err != nil {
		return content.Document{}, err
	}
	return content.ForPersistence(content.Parse(raw)), nil
}

// Save normalizes the whole working copy and writes it.
func (ws *Workspace) Save(s Saver) error {
	doc, err := ws.Document()
	if err != nil {
		return err
	}
	return errors.Wrap(s.Write(doc), "save document")
}

func checkPath(path string) error {
	if strings.TrimSpace(path) == "" || strings.HasPrefix(path, ".") || strings.HasSuffix(path, ".") {
		return errors.Wrapf(ErrInvalidPath, "%q", path)
	}
	return nil
}
