// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package workload

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/tidwall/gjson"
)

// Document is a workload read from JSON. Size and Data are optional; when
// Data is present Size is its length.
type Document struct {
	Size int
	Data []int64
	Ops  []Op
}

// LoadFile reads a workload document from path.
func LoadFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to open workload: %w", err)
	}
	defer f.Close()

	doc, err := Load(f)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Load parses a workload document. Accepted shapes:
//
//	[op, ...]
//	{"size": N, "data": [v, ...], "ops": [op, ...]}
//
// where each op is either an object
//
//	{"op": "range", "left": L, "right": R}
//	{"op": "update", "index": I, "value": V}
//
// or a tuple ["Range", L, R] / ["Update", I, V].
func Load(r io.Reader) (Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read workload: %w", err)
	}
	if !gjson.ValidBytes(raw) {
		return Document{}, fmt.Errorf("%w: not valid JSON", ErrMalformed)
	}

	var doc Document
	root := gjson.ParseBytes(raw)
	opsResult := root

	if root.IsObject() {
		if data := root.Get("data"); data.Exists() {
			if !data.IsArray() {
				return Document{}, fmt.Errorf("%w: data must be an array", ErrMalformed)
			}
			for _, v := range data.Array() {
				doc.Data = append(doc.Data, v.Int())
			}
			doc.Size = len(doc.Data)
		}
		if size := root.Get("size"); size.Exists() && doc.Data == nil {
			doc.Size = int(size.Int())
		}
		opsResult = root.Get("ops")
	}

	if !opsResult.IsArray() {
		return Document{}, fmt.Errorf("%w: expected an array of ops", ErrMalformed)
	}

	for i, item := range opsResult.Array() {
		op, err := parseOp(item)
		if err != nil {
			return Document{}, fmt.Errorf("op %d: %w", i, err)
		}
		doc.Ops = append(doc.Ops, op)
	}

	log.Debugf("loaded workload: size=%d ops=%d", doc.Size, len(doc.Ops))
	return doc, nil
}

func parseOp(item gjson.Result) (Op, error) {
	var (
		kind string
		a, b gjson.Result
	)

	switch {
	case item.IsArray():
		parts := item.Array()
		if len(parts) != 3 {
			return Op{}, fmt.Errorf("%w: tuple op needs 3 elements, got %d", ErrMalformed, len(parts))
		}
		kind, a, b = parts[0].String(), parts[1], parts[2]
	case item.IsObject():
		kind = item.Get("op").String()
		switch strings.ToLower(kind) {
		case "range":
			a, b = item.Get("left"), item.Get("right")
		case "update":
			a, b = item.Get("index"), item.Get("value")
		}
	default:
		return Op{}, fmt.Errorf("%w: op must be an object or a tuple", ErrMalformed)
	}

	if a.Type != gjson.Number || b.Type != gjson.Number {
		return Op{}, fmt.Errorf("%w: %q op needs two numbers", ErrMalformed, kind)
	}

	switch strings.ToLower(kind) {
	case "range":
		return Op{Kind: KindRange, Left: int(a.Int()), Right: int(b.Int())}, nil
	case "update":
		return Op{Kind: KindUpdate, Index: int(a.Int()), Value: b.Int()}, nil
	default:
		return Op{}, fmt.Errorf("%w: unknown op %q", ErrMalformed, kind)
	}
}
