package fileset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hallowmark/scriptguard/internal/token"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscover_ModShadowsVanilla(t *testing.T) {
	vanilla := t.TempDir()
	mod := t.TempDir()

	write(t, filepath.Join(vanilla, "common/traits/00_traits.txt"), "vanilla")
	write(t, filepath.Join(mod, "common/traits/00_traits.txt"), "mod")
	write(t, filepath.Join(vanilla, "common/traits/01_traits.txt"), "vanilla-only")

	files, err := Discover(vanilla, []string{mod})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files after shadowing, got %d", len(files))
	}

	var shadowed, vanillaOnly *File
	for i := range files {
		switch files[i].RelPath {
		case "common/traits/00_traits.txt":
			shadowed = &files[i]
		case "common/traits/01_traits.txt":
			vanillaOnly = &files[i]
		}
	}
	if shadowed == nil || shadowed.Kind != token.Mod {
		t.Fatalf("expected the shadowed file to resolve to the mod copy, got %+v", shadowed)
	}
	if vanillaOnly == nil || vanillaOnly.Kind != token.Vanilla {
		t.Fatalf("expected the vanilla-only file to remain vanilla, got %+v", vanillaOnly)
	}
}

func TestDiscover_HigherModLayerWins(t *testing.T) {
	modA := t.TempDir()
	modB := t.TempDir()
	write(t, filepath.Join(modA, "common/traits/00_traits.txt"), "a")
	write(t, filepath.Join(modB, "common/traits/00_traits.txt"), "b")

	files, err := Discover("", []string{modA, modB})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
	if files[0].ModLayer != 2 {
		t.Errorf("expected the later mod root (layer 2) to win, got layer %d", files[0].ModLayer)
	}
}

func TestDiscover_SkipsDotfiles(t *testing.T) {
	vanilla := t.TempDir()
	write(t, filepath.Join(vanilla, ".git/HEAD"), "ref")
	write(t, filepath.Join(vanilla, "common/traits/00_traits.txt"), "vanilla")

	files, err := Discover(vanilla, nil)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected dotfiles to be skipped, got %d files", len(files))
	}
}

func TestDiscover_DeterministicOrder(t *testing.T) {
	vanilla := t.TempDir()
	write(t, filepath.Join(vanilla, "b.txt"), "")
	write(t, filepath.Join(vanilla, "a.txt"), "")

	files, err := Discover(vanilla, nil)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 2 || files[0].RelPath != "a.txt" || files[1].RelPath != "b.txt" {
		t.Fatalf("expected sorted order [a.txt b.txt], got %+v", files)
	}
}
