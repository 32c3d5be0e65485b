package textenc

import (
	"strings"
	"testing"
)

func TestDecode_UTF8WithBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Company,Website")...)
	got := Decode(data)
	if got != "Company,Website" {
		t.Errorf("expected BOM stripped, got %q", got)
	}
}

func TestDecode_PlainUTF8(t *testing.T) {
	got := Decode([]byte("héllo"))
	if got != "héllo" {
		t.Errorf("expected %q, got %q", "héllo", got)
	}
}

func TestDecode_Windows1251Fallback(t *testing.T) {
	// "Привет" in Windows-1251 is not valid UTF-8.
	data := []byte{0xCF, 0xF0, 0xE8, 0xE2, 0xE5, 0xF2}
	got := Decode(data)
	if got != "Привет" {
		t.Errorf("expected cp1251 decode, got %q", got)
	}
}

func TestDecode_NeverEmpty(t *testing.T) {
	// Arbitrary binary garbage must still come back as some string.
	got := Decode([]byte{0xFF, 0xFE, 0x00, 0x81})
	if got == "" {
		t.Error("expected non-empty result for undecodable input")
	}
	if strings.ContainsRune(got, 0xFFFD) {
		// replacement runes are acceptable, just document the expectation
		t.Log("lossy replacement applied")
	}
}
