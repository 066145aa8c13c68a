// Package sheet reads and writes the xlsx files exchanged with the office:
// the IP inventory sheet and the rental status sheet.
package sheet

import (
	_ "embed"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

const blankHeader = "__EMPTY"

//go:embed aliases.yaml
var aliasYAML []byte

// AliasTable maps a canonical field to its accepted header names in priority order.
type AliasTable map[string][]string

type aliasFile struct {
	IP     AliasTable `yaml:"ip"`
	Rental AliasTable `yaml:"rental"`
}

var defaultAliases aliasFile

func init() {
	if err := yaml.Unmarshal(aliasYAML, &defaultAliases); err != nil {
		panic(fmt.Sprintf("sheet: aliases.yaml: %v", err))
	}
}

// IPAliases returns the header table used by ReadIPInventory.
func IPAliases() AliasTable { return defaultAliases.IP }

// RentalAliases returns the header table used by ReadRentals.
func RentalAliases() AliasTable { return defaultAliases.Rental }

// normalizeHeader folds the spellings seen in real sheets onto one key:
// NFC (macOS writes decomposed Hangul), no whitespace at all, lower case.
func normalizeHeader(s string) string {
	s = norm.NFC.String(s)
	var b strings.Builder
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// columns is an alias table resolved against one header row.
type columns map[string]int

// resolve picks, for every canonical field, the column of its first alias
// present in header. Fields with no matching column are absent.
func (t AliasTable) resolve(header []string) columns {
	pos := make(map[string]int, len(header))
	firstBlank := -1
	for i, h := range header {
		key := normalizeHeader(h)
		if key == "" {
			if firstBlank < 0 {
				firstBlank = i
			}
			continue
		}
		if _, dup := pos[key]; !dup {
			pos[key] = i
		}
	}

	cols := make(columns, len(t))
	for field, aliases := range t {
		for _, a := range aliases {
			if a == blankHeader {
				if firstBlank >= 0 {
					cols[field] = firstBlank
					break
				}
				continue
			}
			if i, ok := pos[normalizeHeader(a)]; ok {
				cols[field] = i
				break
			}
		}
	}
	return cols
}

// get returns the trimmed cell of field in row, or "" when the column is
// missing or the row is short (excelize drops trailing empty cells).
func (c columns) get(row []string, field string) string {
	i, ok := c[field]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
