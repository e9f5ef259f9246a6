// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/apex/log"
)

const maxSchemaDepth = 1

// DumpSchema prints the sorted attribute names a result row of typ carries.
func DumpSchema(w io.Writer, typ reflect.Type) {
	names := SchemaWalker("", typ, 0)
	if len(names) == 0 {
		log.Debugf("No tags found for type: %s", typ.Name())
		return
	}
	sort.Strings(names)

	fmt.Fprintln(w, "Schema for", typ.Name(), "--")
	for _, name := range names {
		fmt.Fprintln(w, name)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w,
		`Attributes that are available to the --attrs, --filter and --sort flags.
Nested attributes are addressed with dots, e.g. --attrs stats.hits.`)
}

// SchemaWalker walks the json tags of a struct type, descending into nested
// structs up to maxSchemaDepth.
func SchemaWalker(holder string, typ reflect.Type, depth int) []string {
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil
	}

	var names []string
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)

		tagValue, ok := field.Tag.Lookup("json")
		if !ok || !field.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(tagValue, ",")
		if name == "-" || name == "" {
			continue
		}
		if holder != "" {
			name = holder + "." + name
		}

		ft := field.Type
		if ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Struct && depth < maxSchemaDepth {
			names = append(names, SchemaWalker(name, ft, depth+1)...)
			continue
		}
		names = append(names, name)
	}

	return names
}
