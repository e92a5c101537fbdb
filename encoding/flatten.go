// Copyright 2024 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package encoding

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Encode flattens and percent-encodes a parameter map into a query
// string fragment of the form "a=1&b=2".
//
// Nested maps are flattened using key[nestedKey] notation and slices
// using key[] notation. Keys are sorted lexicographically at every
// nesting level, so the output is deterministic regardless of map
// iteration order; callers rely on this for cache-key stability. Bool
// and numeric leaves stringify via their natural textual representation
// before escaping. Only RFC 3986 unreserved characters are left
// unescaped.
func Encode(params map[string]interface{}) string {
	var pairs []string
	flatten("", params, &pairs)
	return strings.Join(pairs, "&")
}

func flatten(prefix string, v interface{}, pairs *[]string) {
	switch x := v.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			key := k
			if prefix != "" {
				key = prefix + "[" + k + "]"
			}
			flatten(key, x[k], pairs)
		}
	case []interface{}:
		for _, el := range x {
			flatten(prefix+"[]", el, pairs)
		}
	default:
		*pairs = append(*pairs, escape(prefix)+"="+escape(stringify(x)))
	}
}

func stringify(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", x)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case fmt.Stringer:
		return x.String()
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", x)
	}
}

// escape percent-encodes everything outside the RFC 3986 section 2.3
// unreserved set.
func escape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
		} else {
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&0xf])
		}
	}
	return b.String()
}

const upperhex = "0123456789ABCDEF"

func unreserved(c byte) bool {
	return 'A' <= c && c <= 'Z' ||
		'a' <= c && c <= 'z' ||
		'0' <= c && c <= '9' ||
		c == '-' || c == '.' || c == '_' || c == '~'
}
