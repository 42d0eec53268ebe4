package i18n

import "testing"

func TestResolveHonorsQValues(t *testing.T) {
	b, err := Load("testdata", "en", []string{"en", "es"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := b.Resolve("es;q=0.8, en;q=0.9"); got != "en" {
		t.Fatalf("expected en, got %s", got)
	}
	if got := b.Resolve("es-MX, en;q=0.5"); got != "es" {
		t.Fatalf("expected es, got %s", got)
	}
	if got := b.Resolve("fr-FR"); got != "en" {
		t.Fatalf("expected fallback en, got %s", got)
	}
	if got := b.Resolve(""); got != "en" {
		t.Fatalf("expected fallback en for empty header, got %s", got)
	}
}

func TestTFallsBackToDefaultThenKey(t *testing.T) {
	b, err := Load("testdata", "en", []string{"en", "es"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := b.T("es", "nav.home"); got != "Inicio" {
		t.Fatalf("expected Inicio, got %s", got)
	}
	if got := b.T("es", "greeting"); got != "Hello" {
		t.Fatalf("expected fallback Hello, got %s", got)
	}
	if got := b.T("es", "missing.key"); got != "missing.key" {
		t.Fatalf("expected key, got %s", got)
	}
	if !b.Has("es", "greeting") || b.Has("es", "missing.key") {
		t.Fatal("Has disagrees with T")
	}
}

func TestLoadRequiresFallback(t *testing.T) {
	if _, err := Load("testdata", "de", []string{"de", "en"}); err == nil {
		t.Fatal("expected error when fallback dictionary is missing")
	}
	b, err := Load("testdata", "en", []string{"en", "pt"})
	if err != nil {
		t.Fatalf("missing non-default locale should be skipped: %v", err)
	}
	if b.IsSupported("pt") {
		t.Fatal("pt has no dictionary and must not be supported")
	}
}
