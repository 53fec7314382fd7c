package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLookup(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "note.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	entry, ok, err := Lookup(file)
	if err != nil || !ok {
		t.Fatalf("Lookup(file) = %v, %v", ok, err)
	}
	if entry.IsDir || entry.Name != "note.txt" {
		t.Fatalf("unexpected entry: %#v", entry)
	}

	entry, ok, err = Lookup(dir)
	if err != nil || !ok || !entry.IsDir {
		t.Fatalf("Lookup(dir) = %#v, %v, %v", entry, ok, err)
	}

	_, ok, err = Lookup(filepath.Join(dir, "missing"))
	if err != nil || ok {
		t.Fatalf("expected missing entry, got ok=%v err=%v", ok, err)
	}
}

func TestLookupDanglingSymlink(t *testing.T) {
	dir := t.TempDir()
	link := filepath.Join(dir, "dangling")
	if err := os.Symlink(filepath.Join(dir, "nowhere"), link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	_, ok, err := Lookup(link)
	if err != nil || !ok {
		t.Fatalf("dangling symlink should still be an entry: ok=%v err=%v", ok, err)
	}
}

func TestListed(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "note.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !Listed(dir, "note.txt") {
		t.Fatal("expected note.txt to be listed")
	}
	if Listed(dir, "Note.txt") {
		t.Fatal("listing must compare names exactly")
	}
	if !Listed(filepath.Join(dir, "missing"), "x") {
		t.Fatal("unreadable directory should count as listed")
	}
}

func TestParent(t *testing.T) {
	if _, ok := Parent(string(filepath.Separator)); ok {
		t.Fatal("root must not have a parent")
	}
	dir := t.TempDir()
	parent, ok := Parent(filepath.Join(dir, "child"))
	if !ok || parent != dir {
		t.Fatalf("Parent = %q, %v; want %q", parent, ok, dir)
	}
	parent, ok = Parent(filepath.Join(dir, "child") + string(filepath.Separator))
	if !ok || parent != dir {
		t.Fatalf("trailing separator: Parent = %q, %v; want %q", parent, ok, dir)
	}
}

func TestRenameNoReplace(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	if err := os.WriteFile(src, []byte("source"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dst, []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := RenameNoReplace(src, dst)
	if !errors.Is(err, ErrTargetExists) {
		t.Fatalf("expected ErrTargetExists, got %v", err)
	}
	got, _ := os.ReadFile(dst)
	if string(got) != "keep" {
		t.Fatalf("existing target was overwritten: %q", got)
	}

	free := filepath.Join(dir, "free.txt")
	if err := RenameNoReplace(src, free); err != nil {
		t.Fatalf("rename to free target: %v", err)
	}
	if Occupied(src) {
		t.Fatal("source still present after rename")
	}
	if !Occupied(free) {
		t.Fatal("target missing after rename")
	}
}
