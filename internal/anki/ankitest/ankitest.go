// Package ankitest builds small .apkg decks for tests.
package ankitest

import (
	"archive/zip"
	"database/sql"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// ModelID is the note type every fixture note uses. It has the fields
// Front and Meaning.
const ModelID int64 = 1001

// DeckID is the deck every fixture card lands in.
const DeckID int64 = 2

const models = `{
	"1001": {
		"id": 1001,
		"name": "Thai Basic",
		"type": 0,
		"css": ".card {}",
		"flds": [
			{"name": "Front", "ord": 0, "font": "Arial", "size": 20},
			{"name": "Meaning", "ord": 1, "font": "Arial", "size": 20}
		],
		"tmpls": [{"name": "Card 1", "qfmt": "{{Front}}", "afmt": "{{Meaning}}"}]
	}
}`

const decks = `{"1": {"id": 1, "name": "Default", "desc": ""}, "2": {"id": 2, "name": "Thai", "desc": "words"}}`

var schema = []string{
	`CREATE TABLE col (id integer primary key, models text not null, decks text not null)`,
	`CREATE TABLE notes (id integer primary key, guid text not null, mid integer not null,
		mod integer not null, usn integer not null, tags text not null, flds text not null,
		sfld text not null, csum integer not null, flags integer not null, data text not null)`,
	`CREATE TABLE cards (id integer primary key, nid integer not null, did integer not null,
		ord integer not null, mod integer not null, usn integer not null, type integer not null,
		queue integer not null, due integer not null, ivl integer not null, factor integer not null,
		reps integer not null, lapses integer not null, left integer not null, odue integer not null,
		odid integer not null, flags integer not null, data text not null)`,
}

// Note is one fixture note. Note i (from 0) gets ID i+1 and one card with
// ID (i+1)*10.
type Note struct {
	Front   string
	Meaning string
}

// DefaultNotes is a two-note Thai deck.
var DefaultNotes = []Note{
	{Front: "<b>ก</b>า", Meaning: "crow"},
	{Front: "มาลี", Meaning: "jasmine"},
}

// WriteDeck builds a minimal .apkg in a temp dir and returns its path.
func WriteDeck(t testing.TB, notes ...Note) string {
	t.Helper()
	if len(notes) == 0 {
		notes = DefaultNotes
	}

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "collection.anki2")

	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)

	for _, s := range schema {
		_, err := db.Exec(s)
		require.NoError(t, err)
	}

	_, err = db.Exec(`INSERT INTO col (id, models, decks) VALUES (1, ?, ?)`, models, decks)
	require.NoError(t, err)

	for i, n := range notes {
		id := int64(i + 1)
		_, err := db.Exec(`INSERT INTO notes VALUES (?, ?, ?, 0, -1, '', ?, ?, 0, 0, '')`,
			id, "guid"+n.Front, ModelID, n.Front+"\x1f"+n.Meaning, n.Front)
		require.NoError(t, err)
		_, err = db.Exec(`INSERT INTO cards VALUES (?, ?, ?, 0, 0, -1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, '')`,
			id*10, id, DeckID)
		require.NoError(t, err)
	}
	require.NoError(t, db.Close())

	apkg := filepath.Join(dir, "thai.apkg")
	out, err := os.Create(apkg)
	require.NoError(t, err)
	zw := zip.NewWriter(out)

	w, err := zw.Create("collection.anki2")
	require.NoError(t, err)
	in, err := os.Open(dbPath)
	require.NoError(t, err)
	_, err = io.Copy(w, in)
	require.NoError(t, err)
	require.NoError(t, in.Close())

	w, err = zw.Create("media")
	require.NoError(t, err)
	_, err = w.Write([]byte("{}"))
	require.NoError(t, err)

	require.NoError(t, zw.Close())
	require.NoError(t, out.Close())
	return apkg
}
