package anki

import (
	"archive/zip"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ToneFields are the fields added to augmented notes, in order.
var ToneFields = []string{
	"Tone",
	"Tone_Class",
	"Tone_LiveDead",
	"Tone_Confidence",
	"Tone_Explanation",
}

// AddToneFields appends any missing tone field to a model. It returns the
// number of fields added.
func (p *Package) AddToneFields(modelID int64) (int, error) {
	model, ok := p.Models[modelID]
	if !ok {
		return 0, fmt.Errorf("model %d not found", modelID)
	}

	existing := make(map[string]bool, len(model.Fields))
	for _, f := range model.Fields {
		existing[f.Name] = true
	}

	added := 0
	nextOrd := len(model.Fields)
	for _, name := range ToneFields {
		if existing[name] {
			continue
		}
		model.Fields = append(model.Fields, Field{
			Name: name,
			Ord:  nextOrd,
			Font: "Arial",
			Size: 20,
		})
		nextOrd++
		added++
	}

	return added, nil
}

// SetToneData writes data into a note's tone fields. The model must already
// carry them; see AddToneFields.
func (p *Package) SetToneData(note *Note, data ToneData) error {
	model := p.Model(note)
	if model == nil {
		return fmt.Errorf("model not found for note %d", note.ID)
	}

	fieldIndex := make(map[string]int, len(model.Fields))
	for _, f := range model.Fields {
		fieldIndex[f.Name] = f.Ord
	}

	for len(note.Fields) < len(model.Fields) {
		note.Fields = append(note.Fields, "")
	}

	values := data.values()
	for i, name := range ToneFields {
		idx, ok := fieldIndex[name]
		if !ok {
			return fmt.Errorf("note %d: model %q has no field %s", note.ID, model.Name, name)
		}
		note.Fields[idx] = values[i]
	}

	note.RawFlds = strings.Join(note.Fields, fieldSeparator)
	note.Mod = time.Now().Unix()

	return nil
}

// SaveAs writes the modified package to a new .apkg file.
func (p *Package) SaveAs(outputPath string) error {
	if err := p.updateDatabase(); err != nil {
		return fmt.Errorf("updating database: %w", err)
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}

	zipWriter := zip.NewWriter(outFile)
	walkErr := filepath.WalkDir(p.tempDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasSuffix(path, "-journal") {
			return nil
		}

		relPath, err := filepath.Rel(p.tempDir, path)
		if err != nil {
			return err
		}

		w, err := zipWriter.Create(filepath.ToSlash(relPath))
		if err != nil {
			return err
		}

		file, err := os.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()

		_, err = io.Copy(w, file)
		return err
	})

	if err := zipWriter.Close(); err != nil && walkErr == nil {
		walkErr = err
	}
	if err := outFile.Close(); err != nil && walkErr == nil {
		walkErr = err
	}
	if walkErr != nil {
		return fmt.Errorf("creating zip: %w", walkErr)
	}

	return nil
}

// updateDatabase writes models and notes back to the SQLite database.
func (p *Package) updateDatabase() error {
	if err := p.updateModels(); err != nil {
		return err
	}
	return p.updateNotes()
}

// updateModels rewrites the models JSON in the col table. Keys this package
// does not model, such as templates, are written back unchanged.
func (p *Package) updateModels() error {
	modelsMap := make(map[string]map[string]json.RawMessage, len(p.Models))
	for id, model := range p.Models {
		entry := make(map[string]json.RawMessage, len(model.raw)+5)
		for k, v := range model.raw {
			entry[k] = v
		}

		fields, err := json.Marshal(model.Fields)
		if err != nil {
			return fmt.Errorf("marshaling fields of model %d: %w", id, err)
		}
		entry["flds"] = fields
		for k, v := range map[string]any{"id": model.ID, "name": model.Name, "css": model.CSS, "type": model.Type} {
			b, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("marshaling model %d: %w", id, err)
			}
			entry[k] = b
		}

		modelsMap[strconv.FormatInt(id, 10)] = entry
	}

	modelsJSON, err := json.Marshal(modelsMap)
	if err != nil {
		return fmt.Errorf("marshaling models: %w", err)
	}

	if _, err := p.db.Exec("UPDATE col SET models = ?", string(modelsJSON)); err != nil {
		return fmt.Errorf("updating models: %w", err)
	}

	return nil
}

// updateNotes writes every note back with a fresh checksum.
func (p *Package) updateNotes() error {
	for _, note := range p.Notes {
		note.CSum = fieldChecksum(note.SFLD)

		_, err := p.db.Exec(`
			UPDATE notes SET
				mod = ?,
				flds = ?,
				sfld = ?,
				csum = ?
			WHERE id = ?
		`, note.Mod, note.RawFlds, note.SFLD, note.CSum, note.ID)
		if err != nil {
			return fmt.Errorf("updating note %d: %w", note.ID, err)
		}
	}

	return nil
}

// fieldChecksum is Anki's duplicate-check sum: the first 8 hex digits of
// the SHA-1 of the stripped sort field.
func fieldChecksum(sortField string) int64 {
	sum := sha1.Sum([]byte(StripHTML(sortField)))
	csum, _ := strconv.ParseInt(hex.EncodeToString(sum[:])[:8], 16, 64)
	return csum
}
