// Package parser validates generic document trees field by field, reporting
// the first defect together with the slash-joined path it was found at.
package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type parserState int

const (
	stateParsing parserState = iota
	stateValidating
	stateClosed
)

// Parser is a cursor into a document tree. The first failure sticks: every
// later read is a no-op that returns a zero value, and Parse reports only
// that failure.
type Parser struct {
	value any
	path  []string
	err   *Error
	state parserState
}

// Parse decodes JSON and runs fn over the root object.
func Parse[T any](data []byte, fn func(p *Parser) T) (T, error) {
	tree, err := DecodeJSON(data)
	if err != nil {
		var zero T
		return zero, ErrNotJSON
	}
	return ParseValue(tree, fn)
}

// ParseYAML decodes YAML and runs fn over the root object.
func ParseYAML[T any](data []byte, fn func(p *Parser) T) (T, error) {
	tree, err := DecodeYAML(data)
	if err != nil {
		var zero T
		return zero, ErrNotYAML
	}
	return ParseValue(tree, fn)
}

// ParseValue runs fn over an already decoded tree, which must be an object.
func ParseValue[T any](tree any, fn func(p *Parser) T) (T, error) {
	var zero T
	if _, ok := tree.(*Object); !ok {
		return zero, ErrNotObject
	}
	p := &Parser{value: tree}
	defer func() { p.state = stateClosed }()

	out := fn(p)
	if p.err != nil {
		return zero, p.err
	}
	return out, nil
}

// Err returns the recorded failure, if any.
func (p *Parser) Err() error {
	if p.err == nil {
		return nil
	}
	return p.err
}

// Failed reports whether a failure has been recorded.
func (p *Parser) Failed() bool {
	return p.err != nil
}

// Fail records reason at the current path.
func (p *Parser) Fail(reason string) {
	p.assertUsable()
	p.fail(reason)
}

func (p *Parser) fail(reason string) {
	if p.err != nil {
		return
	}
	p.err = &Error{Path: append([]string(nil), p.path...), Reason: reason}
}

func (p *Parser) assertUsable() {
	switch p.state {
	case stateClosed:
		panic("parser: called outside of Parse")
	case stateValidating:
		panic("parser: called inside a validator")
	}
}

func (p *Parser) object() (*Object, bool) {
	obj, ok := p.value.(*Object)
	if !ok {
		p.fail("is supposed to be an object")
	}
	return obj, ok
}

// Has reports whether the current object carries key. It does not consume it.
func (p *Parser) Has(key string) bool {
	p.assertUsable()
	if p.err != nil {
		return false
	}
	obj, ok := p.object()
	if !ok {
		return false
	}
	_, ok = obj.Get(key)
	return ok
}

// IsNull reports whether key is present with a null value.
func (p *Parser) IsNull(key string) bool {
	if !p.Has(key) {
		return false
	}
	v, _ := p.value.(*Object).Get(key)
	return v == nil
}

// Keys returns the keys of the current object in document order.
func (p *Parser) Keys() []string {
	p.assertUsable()
	if p.err != nil {
		return nil
	}
	obj, ok := p.object()
	if !ok {
		return nil
	}
	return obj.Keys()
}

// validate fetches key and runs check against it with key appended to the
// path. check returns an error fragment, or "" on success.
func (p *Parser) validate(key string, check func(v any) string) (any, bool) {
	p.assertUsable()
	if p.err != nil {
		return nil, false
	}
	obj, ok := p.object()
	if !ok {
		return nil, false
	}
	v, ok := obj.Get(key)
	if !ok {
		p.fail(fmt.Sprintf("is missing %q", key))
		return nil, false
	}

	depth := len(p.path)
	p.path = append(p.path, key)
	defer func() { p.path = p.path[:depth] }()

	p.state = stateValidating
	reason := check(v)
	p.state = stateParsing
	if reason != "" {
		p.fail(reason)
		return nil, false
	}
	return v, true
}

// Validate returns the raw value at key after check accepts it.
func (p *Parser) Validate(key string, check func(v any) string) any {
	v, _ := p.validate(key, check)
	return v
}

func isText(v any) string {
	if _, ok := v.(string); !ok {
		return "is supposed to be text"
	}
	return ""
}

func (p *Parser) String(key string) string {
	v, ok := p.validate(key, isText)
	if !ok {
		return ""
	}
	return v.(string)
}

// ValidateString reads text at key and then applies check, which returns a
// trailing error fragment such as "is trying to modify an unrecognized character".
func (p *Parser) ValidateString(key string, check func(s string) string) string {
	v, ok := p.validate(key, func(v any) string {
		if r := isText(v); r != "" {
			return r
		}
		return check(v.(string))
	})
	if !ok {
		return ""
	}
	return v.(string)
}

func (p *Parser) Bool(key string) bool {
	v, ok := p.validate(key, func(v any) string {
		if _, ok := v.(bool); !ok {
			return "is supposed to be true or false"
		}
		return ""
	})
	if !ok {
		return false
	}
	return v.(bool)
}

func (p *Parser) Num(key string) float64 {
	return p.NumRange(key, math.Inf(-1), math.Inf(1), false)
}

// NumRange reads a number in [min, max], or [min, max) unless maxInclusive.
func (p *Parser) NumRange(key string, min, max float64, maxInclusive bool) float64 {
	v, ok := p.validate(key, func(v any) string {
		n, ok := v.(float64)
		if !ok {
			return "is supposed to be a number"
		}
		if n < min || max < n {
			return fmt.Sprintf("must be between %s and %s", formatNum(min), formatNum(max))
		}
		if !maxInclusive && n == max {
			return "must be below " + formatNum(max)
		}
		return ""
	})
	if !ok {
		return 0
	}
	return v.(float64)
}

func formatNum(n float64) string {
	switch {
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// OneOf reads text at key that must equal one of values.
func (p *Parser) OneOf(key string, values []string) string {
	v, ok := p.validate(key, func(v any) string {
		if s, ok := v.(string); ok {
			for _, allowed := range values {
				if s == allowed {
					return ""
				}
			}
		}
		return oneOfMessage(values)
	})
	if !ok {
		return ""
	}
	return v.(string)
}

func oneOfMessage(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = strconv.Quote(v)
	}
	switch len(quoted) {
	case 0:
		return "must not be present"
	case 1:
		return "must be " + quoted[0]
	case 2:
		return "must be either " + quoted[0] + " or " + quoted[1]
	}
	return "must be one of " + strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}

// OptNum reads key if present, otherwise returns def.
func (p *Parser) OptNum(key string, def float64) float64 {
	if !p.Has(key) {
		return def
	}
	return p.Num(key)
}

func (p *Parser) OptBool(key string, def bool) bool {
	if !p.Has(key) {
		return def
	}
	return p.Bool(key)
}

func (p *Parser) OptString(key string, def string) string {
	if !p.Has(key) {
		return def
	}
	return p.String(key)
}

// AsString reads the current value itself as text. It is meant for list
// elements visited through Array.
func (p *Parser) AsString() string {
	p.assertUsable()
	if p.err != nil {
		return ""
	}
	s, ok := p.value.(string)
	if !ok {
		p.fail("is supposed to be text")
	}
	return s
}

// enter moves the cursor onto v at segment for the duration of visit.
func (p *Parser) enter(segment string, v any, visit func()) {
	prev, depth := p.value, len(p.path)
	p.value = v
	p.path = append(p.path, segment)
	defer func() {
		p.value = prev
		p.path = p.path[:depth]
	}()
	visit()
}

func isObject(v any) string {
	if _, ok := v.(*Object); !ok {
		return "is supposed to be an object"
	}
	return ""
}

// Object descends into the object at key.
func (p *Parser) Object(key string, fn func(p *Parser)) {
	v, ok := p.validate(key, isObject)
	if !ok {
		return
	}
	p.enter(key, v, func() { fn(p) })
}

// Array visits every element of the list at key with its index appended to
// the path. Elements may be of any shape.
func (p *Parser) Array(key string, fn func(p *Parser, i int)) {
	v, ok := p.validate(key, func(v any) string {
		if _, ok := v.([]any); !ok {
			return "is supposed to be a list"
		}
		return ""
	})
	if !ok {
		return
	}
	p.enter(key, v, func() {
		for i, item := range v.([]any) {
			if p.err != nil {
				return
			}
			p.enter(strconv.Itoa(i), item, func() { fn(p, i) })
		}
	})
}

// ObjectArray is Array where every element must be an object.
func (p *Parser) ObjectArray(key string, fn func(p *Parser, i int)) {
	p.Array(key, func(p *Parser, i int) {
		if _, ok := p.object(); !ok {
			return
		}
		fn(p, i)
	})
}

// Map visits every entry of the mapping at key in document order. Each entry
// must itself be an object.
func (p *Parser) Map(key string, fn func(p *Parser, name string)) {
	v, ok := p.validate(key, func(v any) string {
		if _, ok := v.(*Object); !ok {
			return "is supposed to be a mapping"
		}
		return ""
	})
	if !ok {
		return
	}
	p.enter(key, v, func() {
		for _, name := range v.(*Object).Keys() {
			if p.err != nil {
				return
			}
			p.Object(name, func(p *Parser) { fn(p, name) })
		}
	})
}

// MapKeys returns the keys of the mapping at key without visiting its entries.
func (p *Parser) MapKeys(key string) []string {
	v, ok := p.validate(key, func(v any) string {
		if _, ok := v.(*Object); !ok {
			return "is supposed to be a mapping"
		}
		return ""
	})
	if !ok {
		return nil
	}
	return v.(*Object).Keys()
}

// ObjectArrayOf collects the results of fn over the object list at key.
func ObjectArrayOf[T any](p *Parser, key string, fn func(p *Parser, i int) T) []T {
	var out []T
	p.ObjectArray(key, func(p *Parser, i int) {
		v := fn(p, i)
		if !p.Failed() {
			out = append(out, v)
		}
	})
	return out
}

// ObjectOf returns fn's result for the object at key.
func ObjectOf[T any](p *Parser, key string, fn func(p *Parser) T) T {
	var out T
	p.Object(key, func(p *Parser) { out = fn(p) })
	return out
}
