/*
 * Copyright (c) 2026. AXIOM STUDIO AI Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package rdashcli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "programs.json"))
}

func entry(name string) ProgramEntry {
	return ProgramEntry{
		Name:        name,
		DisplayName: strings.ToUpper(name),
		Command:     "/usr/bin/" + name,
	}
}

func TestStore_Empty(t *testing.T) {
	s := testStore(t)
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
	if len(s.Entries()) != 0 {
		t.Errorf("expected no entries")
	}
	if _, ok := s.At(0); ok {
		t.Error("At(0) on empty store should report not found")
	}
}

func TestStore_AddAndGet(t *testing.T) {
	s := testStore(t)
	e := ProgramEntry{
		Name:          "htop",
		DisplayName:   "Htop",
		Command:       "htop",
		Args:          []string{"-d", "10"},
		Description:   "process viewer",
		UseSudo:       false,
		CaptureOutput: false,
	}
	if err := s.Add(e); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	got, ok := s.Get("htop")
	if !ok {
		t.Fatal("Get did not find htop")
	}
	if got.DisplayName != "Htop" || got.Command != "htop" || len(got.Args) != 2 {
		t.Errorf("unexpected entry: %+v", got)
	}
	if !s.Has("htop") {
		t.Error("Has should report true")
	}
}

func TestStore_DuplicateName(t *testing.T) {
	s := testStore(t)
	if err := s.Add(entry("htop")); err != nil {
		t.Fatalf("first Add failed: %v", err)
	}

	other := entry("htop")
	other.Command = "/different/command"
	err := s.Add(other)
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}

	// The existing entry must be untouched.
	got, _ := s.Get("htop")
	if got.Command != "/usr/bin/htop" {
		t.Errorf("existing entry was overwritten: %+v", got)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestStore_AddEmptyName(t *testing.T) {
	s := testStore(t)
	if err := s.Add(ProgramEntry{Command: "x"}); err == nil {
		t.Error("expected error for empty name")
	}
}

func TestStore_InsertionOrder(t *testing.T) {
	s := testStore(t)
	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := s.Add(entry(name)); err != nil {
			t.Fatal(err)
		}
	}

	entries := s.Entries()
	want := []string{"zeta", "alpha", "mid"}
	for i, name := range want {
		if entries[i].Name != name {
			t.Errorf("entries[%d] = %q, want %q", i, entries[i].Name, name)
		}
	}

	// At follows the same order.
	if e, ok := s.At(1); !ok || e.Name != "alpha" {
		t.Errorf("At(1) = %v, want alpha", e.Name)
	}
}

func TestStore_Remove(t *testing.T) {
	s := testStore(t)
	for _, name := range []string{"a", "b", "c"} {
		_ = s.Add(entry(name))
	}

	if !s.Remove("b") {
		t.Fatal("Remove should return true for existing entry")
	}
	if s.Remove("b") {
		t.Error("second Remove should return false")
	}
	if s.Has("b") {
		t.Error("b should be gone")
	}

	entries := s.Entries()
	if len(entries) != 2 || entries[0].Name != "a" || entries[1].Name != "c" {
		t.Errorf("remaining order wrong: %+v", entries)
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	s := testStore(t)
	first := ProgramEntry{
		Name: "backup", DisplayName: "Nightly Backup",
		Command: "/opt/backup.sh", Args: []string{"--full"},
		Description: "run the nightly backup", UseSudo: true, CaptureOutput: true,
	}
	second := entry("htop")
	_ = s.Add(first)
	_ = s.Add(second)

	if err := s.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded := NewStore(s.Path())
	if err := loaded.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Len() != 2 {
		t.Fatalf("Len = %d, want 2", loaded.Len())
	}

	entries := loaded.Entries()
	if entries[0].Name != "backup" || entries[1].Name != "htop" {
		t.Errorf("order not preserved across save/load: %v, %v", entries[0].Name, entries[1].Name)
	}
	got := entries[0]
	if !got.UseSudo || !got.CaptureOutput || got.Args[0] != "--full" {
		t.Errorf("fields not preserved: %+v", got)
	}
}

func TestStore_LoadMissingFile(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "does-not-exist.json"))
	if err := s.Load(); err != nil {
		t.Fatalf("missing file should not be an error, got %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
}

func TestStore_LoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "programs.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	s := NewStore(path)
	if err := s.Load(); err == nil {
		t.Error("expected parse error for invalid JSON")
	}
}

func TestStore_LoadFillsNameFromKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "programs.json")
	doc := `{"programs": {"vim": {"display_name": "Vim", "command": "vim"}}}`
	if err := os.WriteFile(path, []byte(doc), 0600); err != nil {
		t.Fatal(err)
	}

	s := NewStore(path)
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	e, ok := s.Get("vim")
	if !ok || e.Name != "vim" {
		t.Errorf("expected name filled from map key, got %+v", e)
	}
}

func TestStore_SavedDocumentShape(t *testing.T) {
	s := testStore(t)
	_ = s.Add(entry("one"))
	_ = s.Add(entry("two"))
	if err := s.Save(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if !strings.Contains(text, `"programs"`) {
		t.Error("expected top-level programs key")
	}
	// Key order in the document encodes insertion order.
	if strings.Index(text, `"one"`) > strings.Index(text, `"two"`) {
		t.Error("expected one to appear before two in the document")
	}
}

func TestStore_Clear(t *testing.T) {
	s := testStore(t)
	_ = s.Add(entry("a"))
	s.Clear()
	if s.Len() != 0 || s.Has("a") {
		t.Error("Clear should empty the catalogue")
	}
}

func TestProgramEntry_Tags(t *testing.T) {
	if got := (ProgramEntry{}).Tags(); got != "" {
		t.Errorf("Tags = %q, want empty", got)
	}
	e := ProgramEntry{UseSudo: true, CaptureOutput: true}
	if got := e.Tags(); got != " [SUDO] [OUT]" {
		t.Errorf("Tags = %q", got)
	}
}
