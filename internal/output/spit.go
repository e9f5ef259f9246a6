// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
	"gopkg.in/yaml.v2"

	"github.com/staranto/memoctl/internal/attrs"
	"github.com/staranto/memoctl/internal/config"
)

// Options are the output related flags of a command.
type Options struct {
	Format string
	Filter string
	Sort   string
	Color  bool
	Titles bool
}

// OptionsFromCommand reads the global output flags from cmd.
func OptionsFromCommand(cmd *cli.Command) Options {
	return Options{
		Format: cmd.String("output"),
		Filter: cmd.String("filter"),
		Sort:   cmd.String("sort"),
		Color:  cmd.Bool("color"),
		Titles: cmd.Bool("titles"),
	}
}

// DumpExamples renders a table of example command usages.
func DumpExamples(w io.Writer, examples [][2]string) {
	if len(examples) == 0 {
		return
	}

	var rows [][]string
	for _, ex := range examples {
		rows = append(rows, []string{ex[0], ex[1]})
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		Headers("Command", "Description").
		BorderHeader(false).
		Rows(rows...)

	fmt.Fprintln(w, t)
}

// SliceDiceSpit orchestrates filtering, transforming, sorting and rendering
// of a dataset according to opts and the attribute specifications. raw is a
// JSON document; parent, when set, is the path of the row array within it.
func SliceDiceSpit(raw bytes.Buffer,
	attrs attrs.AttrList,
	opts Options,
	parent string,
	w io.Writer) error {

	if w == nil {
		w = os.Stdout
	}

	var fullDataset gjson.Result
	if parent != "" {
		fullDataset = gjson.GetBytes(raw.Bytes(), parent)
	} else {
		fullDataset = gjson.ParseBytes(raw.Bytes())
	}

	// Filter out the rows we don't want. Do it here so that the following
	// processes are slightly more efficient since they'll be working on a smaller
	// dataset.
	filteredDataset := FilterDataset(fullDataset, attrs, opts.Filter)

	// Transform each value in each row. Display-only transforms are kept out
	// of json and yaml so numbers stay numbers.
	data := opts.Format == "json" || opts.Format == "yaml"
	for i := range attrs {
		attr := attrs[i]
		if data {
			attr = attr.DataOnly()
		}
		if attr.TransformSpec == "" || attr.Key == "*" {
			continue
		}
		for _, row := range filteredDataset {
			row[attr.OutputKey] = attr.Transform(row[attr.OutputKey])
		}
	}

	SortDataset(filteredDataset, opts.Sort)

	// Excluded attrs only served filtering and sorting.
	for _, attr := range attrs {
		if attr.Include {
			continue
		}
		for _, row := range filteredDataset {
			delete(row, attr.OutputKey)
		}
	}

	switch opts.Format {
	case "json":
		// TODO Figure out how to maintain key order in the JSON document.
		if filteredDataset == nil {
			filteredDataset = []map[string]interface{}{}
		}
		jsonOutput, err := json.Marshal(filteredDataset)
		if err != nil {
			return fmt.Errorf("failed to marshal json: %w", err)
		}
		jsonOutput = pretty.Pretty(jsonOutput)
		if colorEnabled(opts.Color, w) {
			jsonOutput = pretty.Color(jsonOutput, nil)
		}
		_, err = w.Write(jsonOutput)
		return err
	case "yaml":
		yamlOutput, err := yaml.Marshal(filteredDataset)
		if err != nil {
			return fmt.Errorf("failed to marshal yaml: %w", err)
		}
		_, err = w.Write(yamlOutput)
		return err
	default:
		TableWriter(filteredDataset, attrs, opts, w)
	}
	return nil
}

// TableWriter renders the result set in a tabular form honoring color,
// titles and padding options.
func TableWriter(
	resultSet []map[string]interface{},
	attrs attrs.AttrList,
	opts Options,
	w io.Writer) {

	if len(resultSet) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if colorEnabled(opts.Color, w) {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(lipgloss.Color(headerColor))
		evenRowStyle = evenRowStyle.Foreground(lipgloss.Color(evenColor))
		oddRowStyle = oddRowStyle.Foreground(lipgloss.Color(oddColor))
	}

	included := attrs.Included()

	var rows [][]string
	for _, result := range resultSet {
		row := make([]string, 0, len(included))
		for _, attr := range included {
			row = append(row, InterfaceToString(result[attr.OutputKey], "-"))
		}
		rows = append(rows, row)
	}

	pad, _ := config.GetInt("padding", 1)
	log.Debugf("padding: %v", pad)

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(rows...)

	if opts.Titles {
		headers := make([]string, 0, len(included))
		for _, attr := range included {
			headers = append(headers, attr.OutputKey)
		}

		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(headers...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)
}

// colorEnabled reports whether color was asked for and w can show it. Files
// that are not terminals never get escape codes.
func colorEnabled(want bool, w io.Writer) bool {
	if !want {
		return false
	}
	if f, ok := w.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		log.Debugf("%s is not a terminal, color disabled", f.Name())
		return false
	}
	return true
}

// getColors returns configured color values for table rendering.
func getColors(key string) (header string, even string, odd string) {
	header, _ = config.GetString(fmt.Sprintf("%s.title", key), "#f6be00")
	even, _ = config.GetString(fmt.Sprintf("%s.even", key), "#ffffff")
	odd, _ = config.GetString(fmt.Sprintf("%s.odd", key), "#00c8f0")
	return
}

// InterfaceToString converts supported primitive or composite values to a
// string. A custom empty value may be provided.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if value == nil || reflect.ValueOf(value).IsZero() {
		return emptyValue[0]
	}

	switch value := value.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return strings.TrimSpace(string(jsonBytes))
	}
}
