package rdashcli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrDuplicateName is returned by Store.Add when an entry with the same
// name already exists in the catalogue.
var ErrDuplicateName = errors.New("program name already exists")

// ProgramEntry describes one launchable program. Name is the unique
// catalogue key and is immutable after creation. The JSON field names are
// fixed for compatibility with existing config files.
type ProgramEntry struct {
	Name          string   `json:"name"`
	DisplayName   string   `json:"display_name"`
	Command       string   `json:"command"`
	Args          []string `json:"args"`
	Description   string   `json:"description"`
	UseSudo       bool     `json:"run_with_sudo"`
	CaptureOutput bool     `json:"show_output"`
}

// Tags returns the suffix badges shown after the display name in the list
// view (" [SUDO]", " [OUT]").
func (e ProgramEntry) Tags() string {
	var tags string
	if e.UseSudo {
		tags += " [SUDO]"
	}
	if e.CaptureOutput {
		tags += " [OUT]"
	}
	return tags
}

// Store is the in-memory program catalogue backed by a JSON file. Entries
// keep their insertion order, which is also the display order of the list
// view. The persisted document is {"programs": {<name>: <entry>, ...}} and
// the key order of the programs object encodes the insertion order.
type Store struct {
	path   string
	names  []string
	byName map[string]ProgramEntry
}

// DefaultStorePath returns the default programs.json path under ~/.rdash/.
func DefaultStorePath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".rdash", "programs.json")
}

// NewStore creates an empty Store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path, byName: make(map[string]ProgramEntry)}
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Len returns the number of catalogued programs.
func (s *Store) Len() int { return len(s.names) }

// Has reports whether a program with the given name exists.
func (s *Store) Has(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// Get returns the entry for name and whether it was found.
func (s *Store) Get(name string) (ProgramEntry, bool) {
	e, ok := s.byName[name]
	return e, ok
}

// Entries returns all entries in insertion order.
func (s *Store) Entries() []ProgramEntry {
	out := make([]ProgramEntry, 0, len(s.names))
	for _, name := range s.names {
		out = append(out, s.byName[name])
	}
	return out
}

// At returns the entry at the given display index.
func (s *Store) At(i int) (ProgramEntry, bool) {
	if i < 0 || i >= len(s.names) {
		return ProgramEntry{}, false
	}
	return s.byName[s.names[i]], true
}

// Add appends an entry to the catalogue. A duplicate name is rejected with
// ErrDuplicateName; the existing entry is never overwritten.
func (s *Store) Add(e ProgramEntry) error {
	if e.Name == "" {
		return errors.New("program name is empty")
	}
	if _, ok := s.byName[e.Name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateName, e.Name)
	}
	s.names = append(s.names, e.Name)
	s.byName[e.Name] = e
	return nil
}

// Remove deletes the entry with the given name. Returns false if no such
// entry exists.
func (s *Store) Remove(name string) bool {
	if _, ok := s.byName[name]; !ok {
		return false
	}
	delete(s.byName, name)
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			break
		}
	}
	return true
}

// Clear empties the in-memory catalogue without touching the backing file.
func (s *Store) Clear() {
	s.names = nil
	s.byName = make(map[string]ProgramEntry)
}

// Load replaces the in-memory catalogue with the persisted state. A missing
// file yields an empty catalogue and no error.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.names = nil
			s.byName = make(map[string]ProgramEntry)
			return nil
		}
		return fmt.Errorf("read store: %w", err)
	}

	names, byName, err := decodePrograms(data)
	if err != nil {
		return fmt.Errorf("parse store: %w", err)
	}
	s.names = names
	s.byName = byName
	return nil
}

// Save writes the catalogue to disk. An advisory lock on a sibling .lock
// file keeps a headless `rdash add` from interleaving with the TUI.
func (s *Store) Save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	lf, err := os.OpenFile(s.path+".lock", os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	defer lf.Close()

	if err := flockWithTimeout(lf, 5*time.Second); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer flockRelease(lf) //nolint:errcheck

	data, err := s.encodePrograms()
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}
	return os.WriteFile(s.path, data, 0600)
}

// encodePrograms serialises the catalogue, writing the programs object keys
// in insertion order.
func (s *Store) encodePrograms() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{\n  \"programs\": {")
	for i, name := range s.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString("\n    ")
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteString(": ")
		entry, err := json.Marshal(s.byName[name])
		if err != nil {
			return nil, err
		}
		buf.Write(entry)
	}
	if len(s.names) > 0 {
		buf.WriteString("\n  ")
	}
	buf.WriteString("}\n}\n")
	return buf.Bytes(), nil
}

// decodePrograms walks the JSON token stream so the key order of the
// programs object is preserved; encoding/json map decoding would lose it.
func decodePrograms(data []byte) ([]string, map[string]ProgramEntry, error) {
	byName := make(map[string]ProgramEntry)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, byName, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil, errors.New("expected top-level object")
	}

	var names []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		field, _ := tok.(string)
		if field != "programs" {
			// Skip unknown top-level fields.
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, nil, err
			}
			continue
		}

		tok, err = dec.Token()
		if err != nil {
			return nil, nil, err
		}
		if d, ok := tok.(json.Delim); !ok || d != '{' {
			return nil, nil, errors.New("programs: expected object")
		}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, nil, err
			}
			name, _ := keyTok.(string)
			var e ProgramEntry
			if err := dec.Decode(&e); err != nil {
				return nil, nil, fmt.Errorf("program %q: %w", name, err)
			}
			if e.Name == "" {
				e.Name = name
			}
			if _, dup := byName[name]; !dup {
				names = append(names, name)
			}
			byName[name] = e
		}
		if _, err := dec.Token(); err != nil { // closing '}'
			return nil, nil, err
		}
	}

	return names, byName, nil
}
