package geo

import "testing"

func TestResolveCountry_CountryField(t *testing.T) {
	cases := []struct {
		name     string
		country  string
		expected string
	}{
		{"mapped name", "Spain", "ES"},
		{"mapped name lowercase", "united kingdom", "GB"},
		{"unmapped name falls back to prefix", "Portugal", "PO"},
		{"already a code", "de", "DE"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveCountry(map[string]string{"country": tc.country})
			if got != tc.expected {
				t.Errorf("ResolveCountry(country=%q) = %q, want %q", tc.country, got, tc.expected)
			}
		})
	}
}

func TestResolveCountry_LocationField(t *testing.T) {
	cases := []struct {
		location string
		expected string
	}{
		{"Barcelona, Spain", "ES"},
		{"barcelona", "ES"},
		{"Greater Paris Area", "FR"},
		{"Berlin, Germany", "DE"},
		{"London", "GB"},
		{"Somewhere Unrecognizable", DefaultCountry},
	}

	for _, tc := range cases {
		got := ResolveCountry(map[string]string{"location": tc.location})
		if got != tc.expected {
			t.Errorf("ResolveCountry(location=%q) = %q, want %q", tc.location, got, tc.expected)
		}
	}
}

func TestResolveCountry_CountryBeatsLocation(t *testing.T) {
	metadata := map[string]string{
		"country":  "France",
		"location": "Barcelona, Spain",
	}
	if got := ResolveCountry(metadata); got != "FR" {
		t.Errorf("expected country field to win, got %q", got)
	}
}

func TestResolveCountry_Locale(t *testing.T) {
	if got := ResolveCountry(map[string]string{"locale": "en_US"}); got != "US" {
		t.Errorf("expected US from en_US, got %q", got)
	}
	if got := ResolveCountry(map[string]string{"locale": "es_es"}); got != "ES" {
		t.Errorf("expected ES from es_es, got %q", got)
	}
	if got := ResolveCountry(map[string]string{"locale": "en"}); got != DefaultCountry {
		t.Errorf("expected default from bare language locale, got %q", got)
	}
}

func TestResolveCountry_Default(t *testing.T) {
	if got := ResolveCountry(nil); got != DefaultCountry {
		t.Errorf("expected default for nil metadata, got %q", got)
	}
	if got := ResolveCountry(map[string]string{"name": "Ana"}); got != DefaultCountry {
		t.Errorf("expected default for irrelevant metadata, got %q", got)
	}
}

func TestLanguageFor(t *testing.T) {
	cases := map[string]string{
		"FR": "French",
		"ES": "Spanish",
		"DE": "German",
		"JP": "Japanese",
		"US": "English",
		"ZZ": DefaultLanguage,
		"":   DefaultLanguage,
	}
	for code, want := range cases {
		if got := LanguageFor(code); got != want {
			t.Errorf("LanguageFor(%q) = %q, want %q", code, got, want)
		}
	}
}
