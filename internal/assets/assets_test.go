package assets

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

func TestParseLocalization(t *testing.T) {
	src := "l_english:\n" +
		" TRAIT_BRAVE: \"Brave\"\n" +
		" TRAIT_CRAVEN: \"Craven\" # a comment\n" +
		"\n" +
		" TRAIT_BRAVE_DESC: \"Fears nothing\"\n"

	entries, err := parseLocalization(src)
	if err != nil {
		t.Fatalf("parseLocalization: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d: %+v", len(entries), entries)
	}
	for _, e := range entries {
		if e.Language != "english" {
			t.Errorf("expected language english for %q, got %q", e.Key, e.Language)
		}
	}
	if entries[0].Key != "TRAIT_BRAVE" || entries[0].Value != "Brave" {
		t.Errorf("unexpected first entry: %+v", entries[0])
	}
}

func TestLoadProvinces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "definition.csv")
	content := "province;red;green;blue;name;x\n" +
		"1;10;20;30;Paris;0\n" +
		"2;40;50;60;Lyon;0\n" +
		"garbage row\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	provinces, err := LoadProvinces(path)
	if err != nil {
		t.Fatalf("LoadProvinces: %v", err)
	}
	if len(provinces) != 2 {
		t.Fatalf("expected 2 provinces (garbage row skipped), got %d", len(provinces))
	}
	if provinces[0].ID != 1 || provinces[0].Name != "Paris" {
		t.Errorf("unexpected first province: %+v", provinces[0])
	}
}

func TestReadDDSHeader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tex.dds")

	buf := make([]byte, 128)
	copy(buf[0:4], "DDS ")
	binary.LittleEndian.PutUint32(buf[12:16], 256) // height
	binary.LittleEndian.PutUint32(buf[16:20], 512) // width
	if err := os.WriteFile(path, buf, 0644); err != nil {
		t.Fatal(err)
	}

	hdr, err := ReadDDSHeader(path)
	if err != nil {
		t.Fatalf("ReadDDSHeader: %v", err)
	}
	if hdr.Width != 512 || hdr.Height != 256 {
		t.Errorf("expected 512x256, got %dx%d", hdr.Width, hdr.Height)
	}
}

func TestReadDDSHeader_BadMagic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tex.dds")
	buf := make([]byte, 128)
	copy(buf[0:4], "PNG ")
	if err := os.WriteFile(path, buf, 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadDDSHeader(path); err == nil {
		t.Fatal("expected an error for a bad magic number")
	}
}

func TestReadDDSHeader_Truncated(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tex.dds")
	if err := os.WriteFile(path, []byte("DDS \x00\x00\x00"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadDDSHeader(path); err == nil {
		t.Fatal("expected an error for a truncated header")
	}
}
