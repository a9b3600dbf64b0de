package cache

import (
	"path/filepath"
	"reflect"
	"testing"

	"finance-advisor/api/migrate"
	"finance-advisor/api/models"
)

func openTemp(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestPutGetRoundTrip(t *testing.T) {
	c := openTemp(t)

	if _, ok, err := c.Get("missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok=%v err=%v, want absent", ok, err)
	}

	if err := c.Put("k", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok, err := c.Get("k")
	if err != nil || !ok || string(got) != `{"a":1}` {
		t.Fatalf("Get = (%q, %v, %v)", got, ok, err)
	}

	// Overwrite, then read back the new value.
	if err := c.Put("k", []byte(`{"a":2}`)); err != nil {
		t.Fatalf("second Put: %v", err)
	}
	got, _, _ = c.Get("k")
	if string(got) != `{"a":2}` {
		t.Errorf("Get after overwrite = %q", got)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := c.Get("k"); ok {
		t.Error("key survived Delete")
	}
}

func TestStateRoundTrip(t *testing.T) {
	c := openTemp(t)

	state := models.EmptyState(models.LanguageUZ)
	state.Profile.Name = "Aziz"
	state.Expenses = []models.Expense{{ID: "e1", Amount: 100000, Category: models.CategoryFood, Date: "2026-08-10"}}

	if err := c.SaveState(state); err != nil {
		t.Fatalf("SaveState: %v", err)
	}

	raw, ok, err := c.StateRaw()
	if err != nil || !ok {
		t.Fatalf("StateRaw = ok=%v err=%v", ok, err)
	}
	got, err := migrate.State(raw)
	if err != nil {
		t.Fatalf("migrate.State: %v", err)
	}
	if !reflect.DeepEqual(got, state) {
		t.Errorf("round-tripped state differs:\n got %+v\nwant %+v", got, state)
	}
}

func TestSessionLifecycle(t *testing.T) {
	c := openTemp(t)

	user := models.AuthUser{ID: "u1", Username: "aziz", PreferredLang: models.LanguageRU}
	if err := c.SaveSession("tok123", user); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}

	tok, err := c.Token()
	if err != nil || tok != "tok123" {
		t.Fatalf("Token = (%q, %v)", tok, err)
	}
	got, err := c.User()
	if err != nil || got == nil || *got != user {
		t.Fatalf("User = (%+v, %v)", got, err)
	}

	if err := c.ClearSession(); err != nil {
		t.Fatalf("ClearSession: %v", err)
	}
	if tok, _ := c.Token(); tok != "" {
		t.Errorf("Token after ClearSession = %q", tok)
	}
	if got, err := c.User(); err != nil || got != nil {
		t.Errorf("User after ClearSession = (%+v, %v)", got, err)
	}
}

func TestCorruptUserTreatedAsMissing(t *testing.T) {
	c := openTemp(t)

	if err := c.Put(KeyUser, []byte(`{broken`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := c.User()
	if err != nil || got != nil {
		t.Errorf("User = (%+v, %v), want (nil, nil)", got, err)
	}
}

func TestClearAll(t *testing.T) {
	c := openTemp(t)

	if err := c.SaveSession("tok", models.AuthUser{ID: "u1"}); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}
	if err := c.SaveState(models.EmptyState(models.DefaultLanguage)); err != nil {
		t.Fatalf("SaveState: %v", err)
	}

	if err := c.ClearAll(); err != nil {
		t.Fatalf("ClearAll: %v", err)
	}
	if _, ok, _ := c.StateRaw(); ok {
		t.Error("state survived ClearAll")
	}
	if tok, _ := c.Token(); tok != "" {
		t.Error("token survived ClearAll")
	}
}
