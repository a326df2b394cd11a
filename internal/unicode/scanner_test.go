package unicode

import (
	"testing"
)

func TestScan_CleanASCII(t *testing.T) {
	result := Scan("A brave and just ruler.")
	if !result.Clean {
		t.Errorf("expected clean result for plain tooltip text, got threats: %v", result.Threats)
	}
	if result.Sanitized != "A brave and just ruler." {
		t.Errorf("expected sanitized = original, got %q", result.Sanitized)
	}
}

func TestScan_ZeroWidthSpace(t *testing.T) {
	// A zero-width space pasted into a tooltip string between two words.
	input := "Brave​ and bold"
	result := Scan(input)

	if result.Clean {
		t.Fatal("expected threats for zero-width space")
	}
	if len(result.Threats) != 1 {
		t.Fatalf("expected 1 threat, got %d", len(result.Threats))
	}
	if result.Threats[0].Category != "zero-width" {
		t.Errorf("expected category 'zero-width', got %q", result.Threats[0].Category)
	}
	if result.Threats[0].Severity != "block" {
		t.Errorf("expected severity 'block', got %q", result.Threats[0].Severity)
	}
	if result.Sanitized != "Brave and bold" {
		t.Errorf("expected sanitized 'Brave and bold', got %q", result.Sanitized)
	}
}

func TestScan_ZeroWidthJoiner(t *testing.T) {
	input := "Craven‍ and weak"
	result := Scan(input)

	if result.Clean {
		t.Fatal("expected threats for zero-width joiner")
	}
	if result.Threats[0].Category != "zero-width" {
		t.Errorf("expected 'zero-width', got %q", result.Threats[0].Category)
	}
}

func TestScan_BOM(t *testing.T) {
	input := string(rune(0xFEFF)) + "The decision is shown"
	result := Scan(input)

	if result.Clean {
		t.Fatal("expected threats for BOM")
	}
	if result.Threats[0].Category != "zero-width" {
		t.Errorf("expected 'zero-width', got %q", result.Threats[0].Category)
	}
	if result.Sanitized != "The decision is shown" {
		t.Errorf("expected sanitized without BOM, got %q", result.Sanitized)
	}
}

func TestScan_BidiOverride(t *testing.T) {
	// A bidi override makes the text the editor shows differ from the
	// text the game actually stores for this localization key.
	input := "gold ‮sdrawkcab‬ safe"
	result := Scan(input)

	if result.Clean {
		t.Fatal("expected threats for bidi override")
	}

	foundBidi := false
	for _, threat := range result.Threats {
		if threat.Category == "bidi-override" {
			foundBidi = true
			if threat.Severity != "block" {
				t.Errorf("expected severity 'block' for bidi, got %q", threat.Severity)
			}
		}
	}
	if !foundBidi {
		t.Error("expected at least one bidi-override threat")
	}
}

func TestScan_CyrillicHomoglyph(t *testing.T) {
	// "cаstle" where а is Cyrillic (U+0430), not Latin 'a'.
	input := "cаstle_name"
	result := Scan(input)

	if result.Clean {
		t.Fatal("expected threats for Cyrillic homoglyph")
	}
	if result.Threats[0].Category != "homoglyph-cyrillic" {
		t.Errorf("expected 'homoglyph-cyrillic', got %q", result.Threats[0].Category)
	}
	if result.Threats[0].Severity != "audit" {
		t.Errorf("expected severity 'audit' for homoglyph, got %q", result.Threats[0].Severity)
	}
}

func TestScan_CyrillicHomoglyphInKey(t *testing.T) {
	// A localization key that looks identical to "trait_valor" in an
	// editor but won't match it in a case-sensitive lookup, because і
	// here is Cyrillic (U+0456) rather than Latin 'i'.
	input := "traіt_valor"
	result := Scan(input)

	if result.Clean {
		t.Fatal("expected threats for a homoglyph-laced key")
	}
	foundHomoglyph := false
	for _, threat := range result.Threats {
		if threat.Category == "homoglyph-cyrillic" {
			foundHomoglyph = true
		}
	}
	if !foundHomoglyph {
		t.Error("expected homoglyph threat for Cyrillic і in the key")
	}
}

func TestScan_TagCharacters(t *testing.T) {
	input := "tooltip \U000E0001hidden\U000E007F"
	result := Scan(input)

	if result.Clean {
		t.Fatal("expected threats for tag characters")
	}
	foundTag := false
	for _, threat := range result.Threats {
		if threat.Category == "tag-char" {
			foundTag = true
		}
	}
	if !foundTag {
		t.Error("expected tag-char threat")
	}
}

func TestScan_ControlCharacters(t *testing.T) {
	input := "brave\x00craven"
	result := Scan(input)

	if result.Clean {
		t.Fatal("expected threats for control character")
	}
	if result.Threats[0].Category != "control-char" {
		t.Errorf("expected 'control-char', got %q", result.Threats[0].Category)
	}
}

func TestScan_AllowsTabAndNewline(t *testing.T) {
	input := "line one\tindented\nline two"
	result := Scan(input)

	if !result.Clean {
		t.Errorf("tab and newline should be allowed, got threats: %v", result.Threats)
	}
}

func TestScan_MultipleThreats(t *testing.T) {
	// Combine zero-width + bidi + homoglyph in one string literal.
	input := "cаt​ ‮file.txt"
	result := Scan(input)

	if result.Clean {
		t.Fatal("expected multiple threats")
	}
	if len(result.Threats) < 3 {
		t.Errorf("expected at least 3 threats, got %d: %v", len(result.Threats), result.Threats)
	}
}

func TestScan_GreekHomoglyph(t *testing.T) {
	// Greek omicron (ο, U+03BF) instead of Latin 'o'.
	input := "histοry_entry"
	result := Scan(input)

	if result.Clean {
		t.Fatal("expected threats for Greek homoglyph")
	}
	if result.Threats[0].Category != "homoglyph-greek" {
		t.Errorf("expected 'homoglyph-greek', got %q", result.Threats[0].Category)
	}
}

func TestScan_RawHexOutput(t *testing.T) {
	input := "brave​"
	result := Scan(input)

	if result.RawHex == "" {
		t.Error("expected RawHex to contain hex dump of non-ASCII bytes")
	}
}
