package langpref

import (
	"testing"

	"finance-advisor/api/models"
)

func TestResolvePrecedence(t *testing.T) {
	userEN := &models.AuthUser{ID: "u1", Username: "aziz", PreferredLang: models.LanguageEN}
	stateUZ := &models.PersistedState{Lang: models.LanguageUZ}

	tests := []struct {
		name string
		src  Sources
		want models.Language
	}{
		{
			name: "url beats everything",
			src:  Sources{URLParam: "ru", CachedUser: userEN, CachedState: stateUZ},
			want: models.LanguageRU,
		},
		{
			name: "cached preference beats envelope",
			src:  Sources{CachedUser: userEN, CachedState: stateUZ},
			want: models.LanguageEN,
		},
		{
			name: "envelope when nothing else",
			src:  Sources{CachedState: stateUZ},
			want: models.LanguageUZ,
		},
		{
			name: "default when all absent",
			src:  Sources{},
			want: models.DefaultLanguage,
		},
		{
			name: "invalid url falls through",
			src:  Sources{URLParam: "fr", CachedState: stateUZ},
			want: models.LanguageUZ,
		},
		{
			name: "url case insensitive",
			src:  Sources{URLParam: "Uz"},
			want: models.LanguageUZ,
		},
		{
			name: "corrupt cached preference falls through",
			src:  Sources{CachedUser: &models.AuthUser{PreferredLang: "DE"}, CachedState: stateUZ},
			want: models.LanguageUZ,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.src); got != tt.want {
				t.Errorf("Resolve = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestApplyRemote(t *testing.T) {
	tests := []struct {
		name        string
		current     models.Language
		remote      models.Language
		hadURLParam bool
		want        models.Language
	}{
		{"remote adopted without url intent", models.LanguageEN, models.LanguageRU, false, models.LanguageRU},
		{"url intent never overridden", models.LanguageRU, models.LanguageEN, true, models.LanguageRU},
		{"invalid remote keeps current", models.LanguageUZ, "XX", false, models.LanguageUZ},
		{"empty remote keeps current", models.LanguageUZ, "", false, models.LanguageUZ},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ApplyRemote(tt.current, tt.remote, tt.hadURLParam); got != tt.want {
				t.Errorf("ApplyRemote = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in     string
		want   models.Language
		wantOK bool
	}{
		{"EN", models.LanguageEN, true},
		{"uz", models.LanguageUZ, true},
		{" ru ", models.LanguageRU, true},
		{"fr", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := Normalize(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Normalize(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
