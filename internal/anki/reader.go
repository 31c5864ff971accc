// Package anki handles reading and writing Anki .apkg files.
package anki

import (
	"archive/zip"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	_ "modernc.org/sqlite"
)

// fieldSeparator joins the values in a note's flds column.
const fieldSeparator = "\x1f"

// Package represents an opened Anki .apkg file.
type Package struct {
	path    string
	tempDir string
	db      *sql.DB
	Models  map[int64]*Model
	Decks   map[int64]*Deck
	Notes   []*Note
	Cards   []*Card
}

// Model represents an Anki note type.
type Model struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Fields []Field `json:"flds"`
	CSS    string  `json:"css"`
	Type   int     `json:"type"` // 0 = standard, 1 = cloze

	raw map[string]json.RawMessage // every key as stored, so templates survive a rewrite
}

// Field represents a field in a note type.
type Field struct {
	Name   string `json:"name"`
	Ord    int    `json:"ord"`
	Sticky bool   `json:"sticky"`
	RTL    bool   `json:"rtl"`
	Font   string `json:"font"`
	Size   int    `json:"size"`
}

// Deck represents an Anki deck.
type Deck struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Desc string `json:"desc"`
}

// Note represents an Anki note.
type Note struct {
	ID      int64
	GUID    string
	ModelID int64
	Mod     int64
	USN     int
	Tags    string
	Fields  []string // parsed from flds
	RawFlds string
	SFLD    string // sort field
	CSum    int64
	Flags   int
	Data    string
}

// Card represents an Anki card.
type Card struct {
	ID     int64
	NoteID int64
	DeckID int64
	Ord    int
	Mod    int64
	USN    int
	Type   int
	Queue  int
	Due    int
	IVL    int
	Factor int
	Reps   int
	Lapses int
	Left   int
	ODue   int
	ODid   int64
	Flags  int
	Data   string
}

// OpenPackage extracts an .apkg file to a temp directory and loads its
// collection. Call Close to remove the temp directory.
func OpenPackage(path string) (*Package, error) {
	pkg := &Package{
		path:   path,
		Models: make(map[int64]*Model),
		Decks:  make(map[int64]*Deck),
	}

	tempDir, err := os.MkdirTemp("", "gaier-anki-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}
	pkg.tempDir = tempDir

	if err := pkg.extract(); err != nil {
		pkg.Close()
		return nil, err
	}

	dbPath := filepath.Join(tempDir, "collection.anki21")
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		dbPath = filepath.Join(tempDir, "collection.anki2")
	}
	if _, err := os.Stat(dbPath); err != nil {
		pkg.Close()
		return nil, fmt.Errorf("no collection in %s: %w", path, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		pkg.Close()
		return nil, fmt.Errorf("opening database: %w", err)
	}
	pkg.db = db

	for _, load := range []func() error{pkg.loadCollection, pkg.loadNotes, pkg.loadCards} {
		if err := load(); err != nil {
			pkg.Close()
			return nil, err
		}
	}

	return pkg, nil
}

// extract unzips the .apkg file.
func (p *Package) extract() error {
	r, err := zip.OpenReader(p.path)
	if err != nil {
		return fmt.Errorf("opening zip: %w", err)
	}
	defer r.Close()

	root := filepath.Clean(p.tempDir) + string(os.PathSeparator)
	for _, f := range r.File {
		fpath := filepath.Join(p.tempDir, f.Name)

		// Prevent zip slip
		if !strings.HasPrefix(fpath, root) {
			return fmt.Errorf("illegal file path: %s", f.Name)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(fpath, 0755); err != nil {
				return err
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(fpath), 0755); err != nil {
			return err
		}
		if err := extractFile(f, fpath); err != nil {
			return fmt.Errorf("extracting %s: %w", f.Name, err)
		}
	}

	return nil
}

func extractFile(f *zip.File, dest string) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// loadCollection loads models and decks from the col table.
func (p *Package) loadCollection() error {
	var models, decks string

	row := p.db.QueryRow("SELECT models, decks FROM col")
	if err := row.Scan(&models, &decks); err != nil {
		return fmt.Errorf("reading collection: %w", err)
	}

	var modelsMap map[string]json.RawMessage
	if err := json.Unmarshal([]byte(models), &modelsMap); err != nil {
		return fmt.Errorf("parsing models: %w", err)
	}

	for _, modelJSON := range modelsMap {
		var model Model
		if err := json.Unmarshal(modelJSON, &model); err != nil {
			continue // skip malformed models
		}
		if err := json.Unmarshal(modelJSON, &model.raw); err != nil {
			continue
		}
		p.Models[model.ID] = &model
	}

	var decksMap map[string]json.RawMessage
	if err := json.Unmarshal([]byte(decks), &decksMap); err != nil {
		return fmt.Errorf("parsing decks: %w", err)
	}

	for _, deckJSON := range decksMap {
		var deck Deck
		if err := json.Unmarshal(deckJSON, &deck); err != nil {
			continue
		}
		p.Decks[deck.ID] = &deck
	}

	return nil
}

// loadNotes loads all notes from the database.
func (p *Package) loadNotes() error {
	rows, err := p.db.Query(`
		SELECT id, guid, mid, mod, usn, tags, flds, sfld, csum, flags, data
		FROM notes ORDER BY id
	`)
	if err != nil {
		return fmt.Errorf("querying notes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var note Note
		if err := rows.Scan(
			&note.ID, &note.GUID, &note.ModelID, &note.Mod, &note.USN,
			&note.Tags, &note.RawFlds, &note.SFLD, &note.CSum, &note.Flags, &note.Data,
		); err != nil {
			return fmt.Errorf("scanning note: %w", err)
		}

		note.Fields = strings.Split(note.RawFlds, fieldSeparator)
		p.Notes = append(p.Notes, &note)
	}

	return rows.Err()
}

// loadCards loads all cards from the database.
func (p *Package) loadCards() error {
	rows, err := p.db.Query(`
		SELECT id, nid, did, ord, mod, usn, type, queue, due, ivl, factor, reps, lapses, left, odue, odid, flags, data
		FROM cards ORDER BY id
	`)
	if err != nil {
		return fmt.Errorf("querying cards: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var card Card
		if err := rows.Scan(
			&card.ID, &card.NoteID, &card.DeckID, &card.Ord, &card.Mod, &card.USN,
			&card.Type, &card.Queue, &card.Due, &card.IVL, &card.Factor, &card.Reps,
			&card.Lapses, &card.Left, &card.ODue, &card.ODid, &card.Flags, &card.Data,
		); err != nil {
			return fmt.Errorf("scanning card: %w", err)
		}
		p.Cards = append(p.Cards, &card)
	}

	return rows.Err()
}

// Model returns the note type of a note, or nil.
func (p *Package) Model(note *Note) *Model {
	return p.Models[note.ModelID]
}

// Deck returns the deck of a card, or nil.
func (p *Package) Deck(card *Card) *Deck {
	return p.Decks[card.DeckID]
}

// NoteByID finds a note by ID.
func (p *Package) NoteByID(id int64) *Note {
	i := slices.IndexFunc(p.Notes, func(n *Note) bool { return n.ID == id })
	if i < 0 {
		return nil
	}
	return p.Notes[i]
}

// FieldValue returns a note's value for the named field. Names match case
// insensitively.
func (p *Package) FieldValue(note *Note, fieldName string) string {
	model := p.Model(note)
	if model == nil {
		return ""
	}

	for _, field := range model.Fields {
		if strings.EqualFold(field.Name, fieldName) && field.Ord < len(note.Fields) {
			return note.Fields[field.Ord]
		}
	}

	return ""
}

// FieldNames returns the field names of a note's model in ord order.
func (p *Package) FieldNames(note *Note) []string {
	model := p.Model(note)
	if model == nil {
		return nil
	}

	names := make([]string, len(model.Fields))
	for i, field := range model.Fields {
		names[i] = field.Name
	}
	return names
}

// Close releases the database and removes the temp directory.
func (p *Package) Close() error {
	var err error
	if p.db != nil {
		err = p.db.Close()
		p.db = nil
	}
	if p.tempDir != "" {
		if rmErr := os.RemoveAll(p.tempDir); err == nil {
			err = rmErr
		}
		p.tempDir = ""
	}
	return err
}

// Summary returns a human readable overview of the package contents.
func (p *Package) Summary() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Anki Package: %s\n", p.path)
	fmt.Fprintf(&sb, "  Decks: %d\n", len(p.Decks))
	for _, deck := range sortedByID(p.Decks) {
		fmt.Fprintf(&sb, "    - %s\n", deck.Name)
	}
	fmt.Fprintf(&sb, "  Models (Note Types): %d\n", len(p.Models))
	for _, model := range sortedByID(p.Models) {
		fmt.Fprintf(&sb, "    - %s (%d fields)\n", model.Name, len(model.Fields))
	}
	fmt.Fprintf(&sb, "  Notes: %d\n", len(p.Notes))
	fmt.Fprintf(&sb, "  Cards: %d\n", len(p.Cards))

	return sb.String()
}

// SortedModels returns the models ordered by ID.
func (p *Package) SortedModels() []*Model {
	return sortedByID(p.Models)
}

func sortedByID[T any](m map[int64]*T) []*T {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]*T, len(ids))
	for i, id := range ids {
		out[i] = m[id]
	}
	return out
}
