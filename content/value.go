package content

import (
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

var emptyObject = gjson.Parse("{}")

// Parse decodes raw JSON into a value tree. Input that is not a UTF-8 JSON
// object yields an empty object.
func Parse(data []byte) gjson.Result {
	if !utf8.Valid(data) || !gjson.ValidBytes(data) {
		return emptyObject
	}
	r := gjson.ParseBytes(data)
	if !r.IsObject() {
		return emptyObject
	}
	return r
}

// field looks up a key on an object. Any other value has no fields. A
// repeated key resolves to its last occurrence.
func field(r gjson.Result, name string) gjson.Result {
	var found gjson.Result
	if !r.IsObject() {
		return found
	}
	r.ForEach(func(key, value gjson.Result) bool {
		if key.String() == name {
			found = value
		}
		return true
	})
	return found
}

// present returns the first of names that is set to a non-null value.
func present(r gjson.Result, names ...string) gjson.Result {
	for _, name := range names {
		v := field(r, name)
		if v.Exists() && v.Type != gjson.Null {
			return v
		}
	}
	return gjson.Result{}
}

// items iterates a list. Objects are iterated by value in document order.
func items(r gjson.Result) []gjson.Result {
	switch {
	case r.IsArray():
		return r.Array()
	case r.IsObject():
		var out []gjson.Result
		r.ForEach(func(_, value gjson.Result) bool {
			out = append(out, value)
			return true
		})
		return out
	default:
		return nil
	}
}

// str coerces a scalar to text the way a loose cast would.
func str(r gjson.Result) string {
	switch r.Type {
	case gjson.String:
		return r.Str
	case gjson.Number:
		return r.Raw
	case gjson.True:
		return "1"
	default:
		return ""
	}
}

func truthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.True:
		return true
	case gjson.Number:
		return r.Float() != 0
	case gjson.String:
		return r.Str != "" && r.Str != "0"
	case gjson.JSON:
		return len(items(r)) > 0
	default:
		return false
	}
}
