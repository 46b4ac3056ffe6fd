// Package identifier cleans project identifiers copied from external object
// references.
package identifier

import "strings"

const wrapperPrefix = "objectid("

// Normalize strips an ObjectId( wrapper (any case), surrounding quotes and
// trailing ")" artifacts from raw. Input without those artifacts is returned
// as is, apart from surrounding whitespace. Normalize(Normalize(x)) equals
// Normalize(x).
func Normalize(raw string) string {
	id := raw
	for {
		next := strip(id)
		if next == id {
			return id
		}
		id = next
	}
}

func strip(id string) string {
	id = strings.TrimSpace(id)
	if len(id) >= len(wrapperPrefix) && strings.EqualFold(id[:len(wrapperPrefix)], wrapperPrefix) {
		id = id[len(wrapperPrefix):]
	}
	id = strings.TrimRight(id, ")")
	return strings.Trim(id, `"'`)
}
