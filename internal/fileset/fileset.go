// Package fileset discovers and orders the files a run will parse: one
// vanilla game root, plus zero or more mod overlay roots in load order.
// It implements spec §6's input-path contract and the overlay shadowing
// spec §3/§9 rely on — last-wins by load order, recorded on the token
// location the parser stamps onto every emitted token.
//
// Discovery itself walks directories with filepath.WalkDir; nothing here
// interprets file
// contents — that's the Lexer/parser and per-kind loaders' job.
package fileset

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hallowmark/scriptguard/internal/token"
)

// File is one discovered script/asset file: its absolute path, the
// relative path used for path-prefix loader dispatch, and the overlay
// location metadata every token parsed from it will carry.
type File struct {
	AbsPath string
	RelPath string
	Kind    token.OverlayKind
	ModLayer int
}

// Root is one overlay root: the vanilla installation (ModLayer/Kind are
// implied zero) or one mod directory at a given load priority.
type Root struct {
	Path     string
	Kind     token.OverlayKind
	ModLayer int
}

// Discover walks vanillaRoot followed by each mod root (in the order
// given — the caller's mod list order is the load order), returning every
// regular file found across all roots. When the same RelPath is produced
// by more than one root, only the highest-priority copy is kept — last
// wins by load order, matching spec §6's override rule — but the dropped
// entry's location is not otherwise recorded; the catalog's own duplicate
// detection (by overlay kind/layer comparison at Register time) is what
// surfaces genuine authoring mistakes, not file discovery.
func Discover(vanillaRoot string, modRoots []string) ([]File, error) {
	byRel := make(map[string]File)

	if vanillaRoot != "" {
		if err := walkRoot(Root{Path: vanillaRoot, Kind: token.Vanilla}, byRel); err != nil {
			return nil, err
		}
	}
	for i, mr := range modRoots {
		root := Root{Path: mr, Kind: token.Mod, ModLayer: i + 1}
		if err := walkRoot(root, byRel); err != nil {
			return nil, err
		}
	}

	out := make([]File, 0, len(byRel))
	for _, f := range byRel {
		out = append(out, f)
	}
	// Deterministic order: spec §4.R requires the driver to run the parser
	// across all discovered files "in deterministic filename order".
	sort.Slice(out, func(i, j int) bool { return out[i].RelPath < out[j].RelPath })
	return out, nil
}

func walkRoot(root Root, byRel map[string]File) error {
	info, err := os.Stat(root.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if !info.IsDir() {
		return nil
	}
	return filepath.WalkDir(root.Path, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if strings.HasPrefix(name, ".") && path != root.Path {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") {
			return nil
		}
		rel, err := filepath.Rel(root.Path, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		candidate := File{AbsPath: path, RelPath: rel, Kind: root.Kind, ModLayer: root.ModLayer}
		existing, had := byRel[rel]
		if !had || shadows(candidate, existing) {
			byRel[rel] = candidate
		}
		return nil
	})
}

// shadows reports whether a silently wins over b per the overlay
// precedence rule: strictly higher overlay kind wins outright; among two
// Mod overlays, strictly higher ModLayer wins.
func shadows(a, b File) bool {
	if a.Kind != b.Kind {
		return a.Kind > b.Kind
	}
	if a.Kind == token.Mod {
		return a.ModLayer > b.ModLayer
	}
	return false
}
