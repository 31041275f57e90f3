package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// EntryID identifies an entry. Sources may use either strings or integers;
// the source form is kept so the id round-trips unchanged on the wire.
type EntryID struct {
	raw     string
	numeric bool
}

func StringID(s string) EntryID { return EntryID{raw: s} }

func IntID(n int64) EntryID { return EntryID{raw: strconv.FormatInt(n, 10), numeric: true} }

func (id EntryID) String() string  { return id.raw }
func (id EntryID) IsNumeric() bool { return id.numeric }
func (id EntryID) IsZero() bool    { return id.raw == "" }

func (id EntryID) MarshalJSON() ([]byte, error) {
	if id.numeric {
		return []byte(id.raw), nil
	}
	return json.Marshal(id.raw)
}

func (id *EntryID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = StringID(s)
		return nil
	}

	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("id must be a string or an integer, got %s", b)
	}
	*id = IntID(n)
	return nil
}

// parseID converts a decoded id of unknown type (JSON, YAML, TOML or SQL
// scan result) into an EntryID.
func parseID(v any) (EntryID, error) {
	switch x := v.(type) {
	case nil:
		return EntryID{}, fmt.Errorf("id is required")
	case string:
		return StringID(x), nil
	case []byte:
		return StringID(string(x)), nil
	case json.Number:
		n, err := x.Int64()
		if err != nil {
			return EntryID{}, fmt.Errorf("id %s is not an integer", x)
		}
		return IntID(n), nil
	case int:
		return IntID(int64(x)), nil
	case int32:
		return IntID(int64(x)), nil
	case int64:
		return IntID(x), nil
	case uint64:
		if x > math.MaxInt64 {
			return EntryID{}, fmt.Errorf("id %d out of range", x)
		}
		return IntID(int64(x)), nil
	case float64:
		if x != math.Trunc(x) || math.Abs(x) > math.MaxInt64 {
			return EntryID{}, fmt.Errorf("id %v is not an integer", x)
		}
		return IntID(int64(x)), nil
	default:
		return EntryID{}, fmt.Errorf("id has unsupported type %T", v)
	}
}

// Entry is one cataloged service.
type Entry struct {
	ID          EntryID `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Auth        string  `json:"auth"`
	URL         string  `json:"url"`
}

// AuthMode returns the display classification of the entry's auth label.
func (e Entry) AuthMode() AuthMode { return ClassifyAuth(e.Auth) }

type AuthMode int

const (
	AuthNone AuthMode = iota
	AuthKey
	AuthOAuth
	AuthOther
)

func (m AuthMode) String() string {
	switch m {
	case AuthNone:
		return "none"
	case AuthKey:
		return "key"
	case AuthOAuth:
		return "oauth"
	default:
		return "other"
	}
}

// ClassifyAuth maps a free-form auth label onto the closed display set.
func ClassifyAuth(label string) AuthMode {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "", "no", "none":
		return AuthNone
	case "api key", "apikey", "key", "x-mashape-key":
		return AuthKey
	case "oauth", "oauth2":
		return AuthOAuth
	default:
		return AuthOther
	}
}

// Validate checks every entry and the uniqueness of ids. Ids are compared by
// their textual form, so "1" and 1 collide.
func Validate(entries []Entry) error {
	seen := make(map[string]int, len(entries))
	for i, e := range entries {
		if e.ID.IsZero() {
			return fmt.Errorf("%w: entry %d: id is required", ErrMalformedData, i)
		}
		if prev, ok := seen[e.ID.String()]; ok {
			return fmt.Errorf("%w: entry %d: duplicate id %q (first seen at entry %d)", ErrMalformedData, i, e.ID, prev)
		}
		seen[e.ID.String()] = i

		if strings.TrimSpace(e.Name) == "" {
			return fmt.Errorf("%w: entry %d (id %s): name is required", ErrMalformedData, i, e.ID)
		}
		if strings.TrimSpace(e.Category) == "" {
			return fmt.Errorf("%w: entry %d (id %s): category is required", ErrMalformedData, i, e.ID)
		}
		if !isAbsoluteURL(e.URL) {
			return fmt.Errorf("%w: entry %d (id %s): url %q is not absolute", ErrMalformedData, i, e.ID, e.URL)
		}
	}
	return nil
}

func isAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.IsAbs() && u.Host != ""
}
