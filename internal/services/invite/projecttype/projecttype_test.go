package projecttype

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"testing"
)

func TestToInternal(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"savings-circle": "tontine",
		"savings_circle": "tontine",
		"tontine":        "tontine",
		"money-pool":     "money-pool",
		"":               "",
	}
	for in, want := range tests {
		if got := ToInternal(in); got != want {
			t.Fatalf("ToInternal(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCanonicalPublic(t *testing.T) {
	t.Parallel()

	if got := CanonicalPublic("tontine"); got != "savings-circle" {
		t.Fatalf("CanonicalPublic(tontine) = %q", got)
	}
	if got := CanonicalPublic("savings_circle"); got != "savings_circle" {
		t.Fatalf("CanonicalPublic(savings_circle) = %q", got)
	}
}

func TestSelectedVariant(t *testing.T) {
	t.Parallel()

	public, _ := DefaultRegistry(true).Lookup(Tontine)
	if got := public.Selected().RecordPath("abc"); got != "/tontines/abc/public" {
		t.Fatalf("public RecordPath() = %q", got)
	}
	authed, _ := DefaultRegistry(false).Lookup(Tontine)
	if got := authed.Selected().RecordPath("abc"); got != "/tontines/abc" {
		t.Fatalf("authenticated RecordPath() = %q", got)
	}
	noPublic := APIConfig{Authenticated: Variant{Path: "/x"}, UsePublic: true}
	if got := noPublic.Selected().RecordPath("1"); got != "/x/1" {
		t.Fatalf("RecordPath() without public variant = %q", got)
	}
}

func TestLookupUnknownType(t *testing.T) {
	t.Parallel()

	if _, ok := DefaultRegistry(true).Lookup("savings-circle"); ok {
		t.Fatal("public spelling must not be a registry key")
	}
}

func TestPublicMapper(t *testing.T) {
	t.Parallel()

	cfg, _ := DefaultRegistry(true).Lookup(Tontine)
	got := cfg.Selected().Map(decode(t, `{"members": 5, "cycles": 3}`))
	if got.Name != nil {
		t.Fatalf("Name = %q, want nil", *got.Name)
	}
	if got.Members == nil || *got.Members != 5 {
		t.Fatalf("Members = %v, want 5", got.Members)
	}
	if got.Cycles == nil || *got.Cycles != 3 {
		t.Fatalf("Cycles = %v, want 3", got.Cycles)
	}
}

func TestAuthenticatedMapper(t *testing.T) {
	t.Parallel()

	cfg, _ := DefaultRegistry(false).Lookup(Tontine)
	got := cfg.Selected().Map(decode(t, `{"name": "Family", "current_participants_count": 8, "available_cycles": 2, "members": 99}`))
	if got.Name == nil || *got.Name != "Family" {
		t.Fatalf("Name = %v, want Family", got.Name)
	}
	if got.Members == nil || *got.Members != 8 {
		t.Fatalf("Members = %v, want 8", got.Members)
	}
	if got.Cycles == nil || *got.Cycles != 2 {
		t.Fatalf("Cycles = %v, want 2", got.Cycles)
	}
}

func TestMapperNullsInvalidFields(t *testing.T) {
	t.Parallel()

	cfg, _ := DefaultRegistry(true).Lookup(Tontine)
	got := cfg.Selected().Map(decode(t, `{"name": "", "members": "5", "cycles": 2.5}`))
	if got.Name != nil || got.Members != nil || got.Cycles != nil {
		t.Fatalf("Map() = %+v, want all nil", got)
	}
	if got := cfg.Selected().Map(nil); got.Name != nil || got.Members != nil || got.Cycles != nil {
		t.Fatalf("Map(nil) = %+v, want all nil", got)
	}
}

func TestMapperNumberRange(t *testing.T) {
	t.Parallel()

	intPtr := func(n int) *int { return &n }
	tests := []struct {
		body string
		want *int
	}{
		{body: "0", want: intPtr(0)},
		{body: "5", want: intPtr(5)},
		{body: "5.0", want: intPtr(5)},
		{body: "-3", want: intPtr(-3)},
		{body: "9007199254740993", want: intPtr(9007199254740993)},
		{body: strconv.Itoa(math.MaxInt), want: intPtr(math.MaxInt)},
		{body: "1e300", want: nil},
		{body: "-1e300", want: nil},
		{body: "99999999999999999999", want: nil},
		{body: "2.5", want: nil},
	}
	cfg, _ := DefaultRegistry(true).Lookup(Tontine)
	for _, tc := range tests {
		decoder := json.NewDecoder(strings.NewReader(`{"members": ` + tc.body + `}`))
		decoder.UseNumber()
		var raw map[string]any
		if err := decoder.Decode(&raw); err != nil {
			t.Fatalf("decode %s: %v", tc.body, err)
		}
		got := cfg.Selected().Map(raw).Members
		switch {
		case tc.want == nil && got != nil:
			t.Fatalf("Members(%s) = %d, want nil", tc.body, *got)
		case tc.want != nil && (got == nil || *got != *tc.want):
			t.Fatalf("Members(%s) = %v, want %d", tc.body, got, *tc.want)
		}
	}

	if got := cfg.Selected().Map(decode(t, `{"members": 1e300}`)).Members; got != nil {
		t.Fatalf("Members(float 1e300) = %d, want nil", *got)
	}
}

func TestMetadataEncodesNulls(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(Metadata{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got := string(data); got != `{"name":null,"members":null,"cycles":null}` {
		t.Fatalf("json = %s", got)
	}
}

func decode(t *testing.T, body string) map[string]any {
	t.Helper()
	var raw map[string]any
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
	return raw
}
