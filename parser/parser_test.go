package parser

import (
	"errors"
	"math"
	"testing"
)

type actionRecord struct {
	Kind string
	Name string
	X    float64
}

func parseActions(p *Parser) []actionRecord {
	var out []actionRecord
	p.Map("scripts", func(p *Parser, name string) {
		out = append(out, ObjectArrayOf(p, "actions", func(p *Parser, i int) actionRecord {
			rec := actionRecord{Kind: p.OneOf("type", []string{"add", "remove", "wait"})}
			switch rec.Kind {
			case "add":
				rec.Name = p.String("name")
				rec.X = p.NumRange("x", -100, 100, true)
			case "remove":
				rec.Name = p.ValidateString("name", func(s string) string {
					if s != "guard" {
						return "is trying to modify an unrecognized character"
					}
					return ""
				})
			}
			return rec
		})...)
	})
	return out
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"not_json", `{"scripts": `, "content is not valid json"},
		{"not_object", `[1, 2]`, "content is not a plain object"},
		{"root_missing", `{}`, `object is missing "scripts"`},
		{"not_mapping", `{"scripts": []}`, "scripts is supposed to be a mapping"},
		{"entry_not_object", `{"scripts": {"intro": 4}}`, "scripts/intro is supposed to be an object"},
		{"not_list", `{"scripts": {"intro": {"actions": {}}}}`, "scripts/intro/actions is supposed to be a list"},
		{"element_not_object", `{"scripts": {"intro": {"actions": [true]}}}`, "scripts/intro/actions/0 is supposed to be an object"},
		{
			"bad_kind",
			`{"scripts": {"intro": {"actions": [{"type": "add", "name": "a", "x": 1}, {"type": "add", "name": "b", "x": 2}, {"type": "jump"}]}}}`,
			`scripts/intro/actions/2/type must be one of "add", "remove", or "wait"`,
		},
		{"missing_field", `{"scripts": {"intro": {"actions": [{"type": "add", "x": 1}]}}}`, `scripts/intro/actions/0 is missing "name"`},
		{"wrong_text", `{"scripts": {"intro": {"actions": [{"type": "add", "name": 7, "x": 1}]}}}`, "scripts/intro/actions/0/name is supposed to be text"},
		{"wrong_number", `{"scripts": {"intro": {"actions": [{"type": "add", "name": "a", "x": "1"}]}}}`, "scripts/intro/actions/0/x is supposed to be a number"},
		{"out_of_range", `{"scripts": {"intro": {"actions": [{"type": "add", "name": "a", "x": 101}]}}}`, "scripts/intro/actions/0/x must be between -100 and 100"},
		{"predicate", `{"scripts": {"intro": {"actions": [{"type": "remove", "name": "bob"}]}}}`, "scripts/intro/actions/0/name is trying to modify an unrecognized character"},
		{
			"first_failure_wins",
			`{"scripts": {"a": {"actions": [{"type": "remove", "name": "x"}]}, "b": {"actions": 3}}}`,
			"scripts/a/actions/0/name is trying to modify an unrecognized character",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := Parse([]byte(tc.doc), parseActions)
			if err == nil {
				t.Fatalf("expected error %q, got none", tc.want)
			}
			if err.Error() != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, err.Error())
			}
			if out != nil {
				t.Fatalf("expected no partial result, got %v", out)
			}
		})
	}
}

func TestParseSentinels(t *testing.T) {
	if _, err := Parse([]byte(`nope`), parseActions); !errors.Is(err, ErrNotJSON) {
		t.Fatalf("expected ErrNotJSON, got %v", err)
	}
	if _, err := Parse([]byte(`"text"`), parseActions); !errors.Is(err, ErrNotObject) {
		t.Fatalf("expected ErrNotObject, got %v", err)
	}
	_, err := Parse([]byte(`{}`), parseActions)
	var perr *Error
	if !errors.As(err, &perr) || len(perr.Path) != 0 {
		t.Fatalf("expected a root *Error, got %#v", err)
	}
}

func TestParseSuccessKeepsDocumentOrder(t *testing.T) {
	doc := `{"scripts": {
		"zeta": {"actions": [{"type": "add", "name": "z", "x": 100}]},
		"alpha": {"actions": [{"type": "remove", "name": "guard"}, {"type": "wait"}]}
	}}`
	out, err := Parse([]byte(doc), parseActions)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []actionRecord{{"add", "z", 100}, {"remove", "guard", 0}, {"wait", "", 0}}
	if len(out) != len(want) {
		t.Fatalf("expected %v, got %v", want, out)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, out)
		}
	}
}

func TestNumRangeBounds(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		min, max  float64
		inclusive bool
		want      string
	}{
		{"inclusive_max_ok", `12`, 0, 12, true, ""},
		{"exclusive_max", `12`, 0, 12, false, "n must be below 12"},
		{"below_min", `-1`, 0, math.Inf(1), false, "n must be between 0 and Infinity"},
		{"fraction", `0.5`, 0.25, 1, false, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(`{"n": `+tc.value+`}`), func(p *Parser) float64 {
				return p.NumRange("n", tc.min, tc.max, tc.inclusive)
			})
			got := ""
			if err != nil {
				got = err.Error()
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestOneOfMessages(t *testing.T) {
	tests := []struct {
		values []string
		want   string
	}{
		{[]string{"a"}, `k must be "a"`},
		{[]string{"a", "b"}, `k must be either "a" or "b"`},
		{[]string{"a", "b", "c"}, `k must be one of "a", "b", or "c"`},
	}
	for _, tc := range tests {
		_, err := Parse([]byte(`{"k": "z"}`), func(p *Parser) string { return p.OneOf("k", tc.values) })
		if err == nil || err.Error() != tc.want {
			t.Fatalf("expected %q, got %v", tc.want, err)
		}
	}
}

func TestOptionalAndNull(t *testing.T) {
	type result struct {
		z       float64
		nullSec bool
		flag    bool
		name    string
	}
	out, err := Parse([]byte(`{"seconds": null, "flag": true}`), func(p *Parser) result {
		return result{
			z:       p.OptNum("z", 7),
			nullSec: p.IsNull("seconds"),
			flag:    p.OptBool("flag", false),
			name:    p.OptString("name", "anon"),
		}
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.z != 7 || !out.nullSec || !out.flag || out.name != "anon" {
		t.Fatalf("unexpected result %+v", out)
	}
}

func TestStringListElements(t *testing.T) {
	_, err := Parse([]byte(`{"characters": ["a", 2]}`), func(p *Parser) []string {
		var names []string
		p.Array("characters", func(p *Parser, i int) { names = append(names, p.AsString()) })
		return names
	})
	if err == nil || err.Error() != "characters/1 is supposed to be text" {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestParseYAML(t *testing.T) {
	doc := "scripts:\n  intro:\n    actions:\n      - type: add\n        name: a\n        x: 3\n"
	out, err := ParseYAML([]byte(doc), parseActions)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0] != (actionRecord{"add", "a", 3}) {
		t.Fatalf("unexpected result %v", out)
	}
}

func TestMisusePanics(t *testing.T) {
	t.Run("after_parse", func(t *testing.T) {
		var leaked *Parser
		_, _ = Parse([]byte(`{}`), func(p *Parser) int { leaked = p; return 0 })
		defer func() {
			if recover() == nil {
				t.Fatalf("expected panic")
			}
		}()
		leaked.Has("x")
	})
	t.Run("inside_validator", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Fatalf("expected panic")
			}
		}()
		_, _ = Parse([]byte(`{"a": 1, "b": 2}`), func(p *Parser) any {
			return p.Validate("a", func(any) string {
				p.Num("b")
				return ""
			})
		})
	})
}
