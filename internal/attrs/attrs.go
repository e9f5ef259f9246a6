// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: Apache-2.0

// Package attrs parses the --attrs flag into the list of result columns to
// emit, and applies per-column value transforms.
package attrs

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// lengthRegex finds the truncation part of a transform spec.
var lengthRegex = regexp.MustCompile(`-?\d+`)

// Attr represents each of the keys to be included in the output.  These are
// the JSON keys of a result row, thus the name.
type Attr struct {
	// The JSON key to extract from the result row. Nested values can be
	// reached with gjson dot paths.
	Key string
	// Should this Attr be included in output or is it just
	// intended for filtering and sorting?
	Include bool
	// The key to use in the output.  This will also be used as the column title
	// when output=text.
	OutputKey string
	// Transformation spec to apply to the output value.
	TransformSpec string
}

// Transform applies the attr's TransformSpec to value. The spec is a string of
// flags:
//
//	d    treat a number as nanoseconds and render it as a duration
//	h    render a number with thousands separators
//	u/l  upper or lower case a string
//	N    truncate a string to N characters
//	-N   elide the middle of a string down to about N characters
//
// Numbers that no spec flag applies to are returned unchanged, so JSON and
// YAML output keep their type.
func (a *Attr) Transform(value interface{}) interface{} {
	if a.TransformSpec == "" {
		return value
	}

	var result string
	switch v := value.(type) {
	case string:
		result = v
	case int, int64, float64:
		n, _ := toFloat(v)
		switch {
		case strings.ContainsAny(a.TransformSpec, "dD"):
			d := time.Duration(n)
			if d > time.Millisecond {
				d = d.Round(time.Microsecond)
			}
			result = d.String()
		case strings.ContainsAny(a.TransformSpec, "hH"):
			result = humanizeNumber(n)
		default:
			return value
		}
	default:
		return value
	}

	// We need to know which case transformation appears last.  This covers the
	// case where there has been a global case transformation prepended to the
	// attrs transformation and, thus, allows the attr's to carry more weight.
	// IOW...  --attrs '*::U,engine::l' will be lower case.
	lastL := strings.LastIndexAny(a.TransformSpec, "lL")
	lastU := strings.LastIndexAny(a.TransformSpec, "uU")

	if lastL > lastU {
		result = strings.ToLower(result)
	} else if lastU > lastL {
		result = strings.ToUpper(result)
	}

	// Same logic as above re: case.  This allows a more specific length
	// transformation to override a global one.
	match := lengthRegex.FindAllString(a.TransformSpec, -1)
	if len(match) != 0 {
		// Take the last (overriding) match.
		l, _ := strconv.Atoi(match[len(match)-1])
		abs := int(math.Abs(float64(l)))
		if len(result) > abs {
			if l < 0 {
				lr := max(abs/2-1, 1)
				left := result[0:lr]
				right := result[len(result)-lr:]
				result = left + ".." + right
			} else {
				result = result[:l]
			}
		}
	}

	return result
}

// DataOnly returns a copy of a without the display-only transforms (d, h),
// for output formats that keep values typed.
func (a Attr) DataOnly() Attr {
	a.TransformSpec = strings.Map(func(r rune) rune {
		switch r {
		case 'd', 'D', 'h', 'H':
			return -1
		}
		return r
	}, a.TransformSpec)
	a.TransformSpec = strings.Trim(a.TransformSpec, ",")
	return a
}

func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

func humanizeNumber(n float64) string {
	if n == math.Trunc(n) && math.Abs(n) < 1<<53 {
		return humanize.Comma(int64(n))
	}
	return humanize.FormatFloat("#,###.##", n)
}

type AttrList []Attr

// Return a string representation of the AttrList.  This should match the format
// of the original --attrs flag.
func (a *AttrList) String() string {
	result := make([]string, 0, len(*a))
	for _, attr := range *a {
		result = append(result, fmt.Sprintf("%s:%s:%s", attr.Key, attr.OutputKey, attr.TransformSpec))
	}
	return strings.Join(result, ",")
}

// Parse each spec from the --attrs flag and add it to the AttrList.
func (a *AttrList) Set(value string) error {
	if value == "" || value == "*" {
		return nil
	}

	const (
		jsonIdx = iota
		outputIdx
		transformIdx
	)

	// There are three : delimited fields in each spec.  The first is the key to
	// extract from the JSON object.  The second is the key to use in the output.
	// The third is the transformation spec to apply to the output value. The
	// latter two are optional.  The output key will default to the last
	// section of the JSON key.
	specs := strings.Split(value, ",")
specloop:
	for _, spec := range specs {
		attr := Attr{
			Include: true,
		}

		fields := strings.Split(spec, ":")
		if len(fields) > 3 {
			return fmt.Errorf("invalid attr spec %q: at most key:output:transform", spec)
		}

		// The first field is the key to extract from the JSON payload.  If it
		// begins with a !, it is excluded from the output.
		attr.Key = strings.TrimSpace(fields[jsonIdx])
		if strings.HasPrefix(attr.Key, "!") {
			attr.Include = false
			attr.Key = attr.Key[1:]
		}
		if attr.Key == "" {
			return fmt.Errorf("invalid attr spec %q: empty key", spec)
		}

		if attr.Key == "*" {
			attr.Include = false
		}

		// Fixup the output field.  If there is only one field it is considered the
		// JSON extract key and the output key will become the last segment of the
		// . notation.
		if len(fields) == 1 {
			segments := strings.Split(attr.Key, ".")
			attr.OutputKey = segments[len(segments)-1]
		} else {
			if fields[outputIdx] != "" {
				attr.OutputKey = strings.TrimSpace(fields[outputIdx])
			} else {
				attr.OutputKey = attr.Key
			}
		}

		if len(fields) > transformIdx {
			attr.TransformSpec = strings.TrimSpace(fields[transformIdx])
		}

		// If the attr already exists in the list (because it's one of the defaults
		// for cmd or the user double-entered it) just apply the OutputKey, Include
		// and TransformSpec to the existing Attr.
		for i := range *a {
			if (*a)[i].Key == attr.Key || (*a)[i].OutputKey == attr.Key {
				(*a)[i].Include = attr.Include
				(*a)[i].OutputKey = attr.OutputKey
				(*a)[i].TransformSpec = attr.TransformSpec
				continue specloop
			}
		}

		*a = append(*a, attr)
	}

	return nil
}

// SetGlobalTransformSpec inserts a global transform spec into the front of all
// attrs in the list.
func (alist *AttrList) SetGlobalTransformSpec() error {
	spec := ""

	// Find the global transform spec.  If there is more than one, we're not
	// dealing with it and just taking the first.
	for a := range *alist {
		if (*alist)[a].Key == "*" {
			spec = (*alist)[a].TransformSpec
			break
		}
	}

	if spec == "" {
		return nil
	}

	for a := range *alist {
		if (*alist)[a].Key == "*" {
			continue
		}
		(*alist)[a].TransformSpec = spec + "," + (*alist)[a].TransformSpec
	}

	return nil
}

// Included returns the attrs that are emitted, in order.
func (a AttrList) Included() AttrList {
	out := make(AttrList, 0, len(a))
	for _, attr := range a {
		if attr.Include {
			out = append(out, attr)
		}
	}
	return out
}

func (a *AttrList) Type() string {
	return "list"
}
