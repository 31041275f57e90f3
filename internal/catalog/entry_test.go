package catalog

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestEntryID_JSONKeepsForm(t *testing.T) {
	cases := []struct {
		in      string
		numeric bool
		str     string
	}{
		{`7`, true, "7"},
		{`"7"`, false, "7"},
		{`"cat-facts"`, false, "cat-facts"},
		{` -12 `, true, "-12"},
	}

	for _, tc := range cases {
		var id EntryID
		if err := json.Unmarshal([]byte(tc.in), &id); err != nil {
			t.Fatalf("unmarshal %s: %v", tc.in, err)
		}
		if id.IsNumeric() != tc.numeric || id.String() != tc.str {
			t.Fatalf("unmarshal %s: got numeric=%v str=%q", tc.in, id.IsNumeric(), id.String())
		}

		out, err := json.Marshal(id)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if strings.TrimSpace(tc.in) != string(out) {
			t.Fatalf("round trip %s -> %s", tc.in, out)
		}
	}
}

func TestEntryID_RejectsOtherJSON(t *testing.T) {
	for _, in := range []string{`1.5`, `true`, `null`, `{}`} {
		var id EntryID
		if err := json.Unmarshal([]byte(in), &id); err == nil {
			t.Fatalf("expected error for %s", in)
		}
	}
}

func TestEntry_WireShape(t *testing.T) {
	e := Entry{ID: IntID(3), Name: "Weather Now", Category: "Weather", Description: "Current weather", Auth: "API Key", URL: "https://z"}

	raw, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	want := `{"id":3,"name":"Weather Now","category":"Weather","description":"Current weather","auth":"API Key","url":"https://z"}`
	if string(raw) != want {
		t.Fatalf("wire shape\n got %s\nwant %s", raw, want)
	}
}

func TestClassifyAuth(t *testing.T) {
	cases := map[string]AuthMode{
		"No":         AuthNone,
		"":           AuthNone,
		"none":       AuthNone,
		"API Key":    AuthKey,
		"apiKey":     AuthKey,
		"OAuth":      AuthOAuth,
		"oauth2":     AuthOAuth,
		"User-Agent": AuthOther,
	}
	for label, want := range cases {
		if got := ClassifyAuth(label); got != want {
			t.Errorf("ClassifyAuth(%q)=%s want %s", label, got, want)
		}
	}
}

func TestValidate(t *testing.T) {
	ok := Entry{ID: IntID(1), Name: "Cat Facts", Category: "Animals", URL: "https://x"}

	cases := []struct {
		name    string
		entries []Entry
		wantErr string
	}{
		{"empty catalog", nil, ""},
		{"valid", []Entry{ok}, ""},
		{"empty description allowed", []Entry{{ID: StringID("a"), Name: "A", Category: "C", URL: "http://a.example"}}, ""},
		{"missing id", []Entry{{Name: "A", Category: "C", URL: "https://a"}}, "id is required"},
		{"duplicate id", []Entry{ok, ok}, "duplicate id"},
		{"string and int ids collide", []Entry{ok, {ID: StringID("1"), Name: "B", Category: "C", URL: "https://b"}}, "duplicate id"},
		{"blank name", []Entry{{ID: IntID(2), Name: "  ", Category: "C", URL: "https://a"}}, "name is required"},
		{"blank category", []Entry{{ID: IntID(2), Name: "A", URL: "https://a"}}, "category is required"},
		{"relative url", []Entry{{ID: IntID(2), Name: "A", Category: "C", URL: "/docs"}}, "not absolute"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.entries)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrMalformedData) {
				t.Fatalf("err=%v, want ErrMalformedData", err)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("err=%q, want it to mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestNewSnapshot_IsolatedFromCaller(t *testing.T) {
	in := []Entry{{ID: IntID(1), Name: "Cat Facts", Category: "Animals", URL: "https://x"}}

	snap, err := NewSnapshot(in, "test", "")
	if err != nil {
		t.Fatalf("NewSnapshot: %v", err)
	}
	in[0].Name = "changed"

	out := snap.Entries()
	out[0].Category = "changed"

	if got := snap.At(0); got.Name != "Cat Facts" || got.Category != "Animals" {
		t.Fatalf("snapshot mutated: %+v", got)
	}
	if snap.Version == "" {
		t.Fatalf("expected a content version")
	}
}

func TestNilSnapshot_IsEmpty(t *testing.T) {
	var snap *Snapshot
	if snap.Len() != 0 {
		t.Fatalf("len=%d", snap.Len())
	}
	if got := snap.Entries(); got == nil || len(got) != 0 {
		t.Fatalf("entries=%v", got)
	}
}
