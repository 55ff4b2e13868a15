package tavernkeeper

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Record is one remote object, exactly as the service sent it.  Numbers are kept as json.Number
// so that ids and counts are written back out untouched.
type Record map[string]any

func (r Record) ID() string {
	return r.String("id")
}

func (r Record) Name() string {
	return r.String("name")
}

// String renders a scalar field as a string.  Missing and null fields give "".
func (r Record) String(key string) string {
	switch v := r[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Int reads a numeric field, tolerating numbers sent as strings.  Anything unparseable is 0.
func (r Record) Int(key string) int64 {
	switch v := r[key].(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if f, err := v.Float64(); err == nil {
			return int64(f)
		}
	case float64:
		return int64(v)
	case string:
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return 0
}

// Records reads a field holding a list of objects; non-object entries are dropped.
func (r Record) Records(key string) []Record {
	switch list := r[key].(type) {
	case []Record:
		return list
	case []any:
		out := make([]Record, 0, len(list))
		for _, item := range list {
			switch m := item.(type) {
			case map[string]any:
				out = append(out, Record(m))
			case Record:
				out = append(out, m)
			}
		}
		return out
	}
	return []Record{}
}

// Outcome says what became of a fetch.
type Outcome int

const (
	// OK means we got a usable document.
	OK Outcome = iota
	// Empty means the service answered 200 with nothing in it.
	Empty
	// Failed means a non-200 status, or a transport or decoding problem.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case OK:
		return "ok"
	case Empty:
		return "empty"
	default:
		return "failed"
	}
}

// Result of a single-document fetch.
type Result struct {
	Outcome    Outcome
	StatusCode int
	Record     Record

	// Set for transport and decoding failures.
	Err error
}

// PagedResult of a collection fetch.  Items holds everything gathered before any failure.
type PagedResult struct {
	Outcome    Outcome
	StatusCode int
	Items      []Record

	// Number of pages actually requested.
	Pages int
	// Set when MaxPages stopped us before the reported page count.
	Truncated bool

	Err error
}

// Describe gives a short human account of a failed fetch.
func (r Result) Describe() string {
	return describe(r.StatusCode, r.Err)
}

func (r PagedResult) Describe() string {
	return describe(r.StatusCode, r.Err)
}

func describe(status int, err error) string {
	if err != nil {
		return err.Error()
	}
	return fmt.Sprintf("status code %d", status)
}

// Object reads a nested object field; anything else gives nil.
func (r Record) Object(key string) Record {
	m, _ := r[key].(map[string]any)
	return Record(m)
}
