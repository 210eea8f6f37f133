// Package resource reads localization resource files (.resx and .lspkg) into
// a flat, ordered key → text Mapping.
//
// Extraction is best effort: an entry whose expected attribute or child is
// missing is skipped without aborting its siblings. Every skip is recorded
// in Extraction.Skipped so callers can report it.
package resource

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ---------------------------------------------------------------------------
// Results
// ---------------------------------------------------------------------------

// SkipReason explains why an entry did not make it into the mapping.
type SkipReason string

const (
	SkipMissingName   SkipReason = "missing name attribute"
	SkipMissingValue  SkipReason = "missing value element"
	SkipMissingItemID SkipReason = "missing ItemId attribute"
	SkipMissingTarget SkipReason = "missing Str/Tgt/Val element"
)

// Skip records one entry dropped during extraction.
type Skip struct {
	// Index is the position of the entry among its siblings.
	Index int
	// Key is the entry key when it could be read, empty otherwise.
	Key    string
	Reason SkipReason
}

// Extraction is the result of reading one resource document.
type Extraction struct {
	Kind    Kind
	Mapping *Mapping
	Skipped []Skip
}

// ---------------------------------------------------------------------------
// XML shapes
// ---------------------------------------------------------------------------

type resxDocument struct {
	XMLName xml.Name   `xml:"root"`
	Data    []resxData `xml:"data"`
}

type resxData struct {
	Name  *string  `xml:"name,attr"`
	Value []string `xml:"value"`
}

// lspkgDocument covers only the path walked by extraction:
// LocPackage/FileDataList/FileData/LCX/Item/Item/Item.
type lspkgDocument struct {
	XMLName      xml.Name            `xml:"LocPackage"`
	FileDataList []lspkgFileDataList `xml:"FileDataList"`
}

type lspkgFileDataList struct {
	FileData []lspkgFileData `xml:"FileData"`
}

type lspkgFileData struct {
	LCX []lspkgItem `xml:"LCX"`
}

type lspkgItem struct {
	ItemID *string     `xml:"ItemId,attr"`
	Str    []lspkgStr  `xml:"Str"`
	Items  []lspkgItem `xml:"Item"`
}

type lspkgStr struct {
	Tgt []lspkgTgt `xml:"Tgt"`
}

type lspkgTgt struct {
	Val []string `xml:"Val"`
}

// lspkgFileDataIndex is the FileData element holding the string table.
const lspkgFileDataIndex = 2

// ---------------------------------------------------------------------------
// Extraction
// ---------------------------------------------------------------------------

// Extract parses data as an XML document of the given kind.
// KindAuto and KindUnknown both produce an empty mapping without error;
// use ExtractFile to derive the kind from a file name.
func Extract(data []byte, kind Kind) (*Extraction, error) {
	ex := &Extraction{Kind: kind, Mapping: NewMapping()}

	switch kind {
	case KindResx:
		var doc resxDocument
		if err := decode(data, &doc); err != nil {
			return nil, err
		}
		extractResx(&doc, ex)
	case KindLspkg:
		var doc lspkgDocument
		if err := decode(data, &doc); err != nil {
			return nil, err
		}
		items, err := doc.items()
		if err != nil {
			return nil, &Error{Op: "extract lspkg", Kind: KindMalformedSource, Err: err}
		}
		extractLspkg(items, ex)
	default:
		// Still reject documents that are not XML at all.
		if err := decode(data, new(struct{})); err != nil {
			return nil, err
		}
	}

	return ex, nil
}

// ExtractFile reads and extracts path. A KindAuto kind is derived from the
// file extension.
func ExtractFile(ctx context.Context, path string, kind Kind) (*Extraction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Op: "read resource", Kind: KindIO, Path: path, Err: err}
	}
	ex, err := Extract(data, kind.Resolve(path))
	if err != nil {
		var re *Error
		if errors.As(err, &re) && re.Path == "" {
			re.Path = path
		}
		return nil, err
	}
	return ex, nil
}

func decode(data []byte, v any) error {
	// A byte order mark decides the encoding; without one the input is UTF-8.
	r := transform.NewReader(bytes.NewReader(data), unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	dec := xml.NewDecoder(r)
	// The prolog encoding is ignored: the reader above already yields UTF-8.
	dec.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) { return input, nil }
	if err := dec.Decode(v); err != nil {
		return &Error{Op: "parse xml", Kind: KindMalformedSource, Err: fmt.Errorf("%w: %v", ErrMalformedSource, err)}
	}
	return nil
}

func extractResx(doc *resxDocument, ex *Extraction) {
	for i, d := range doc.Data {
		if d.Name == nil {
			ex.Skipped = append(ex.Skipped, Skip{Index: i, Reason: SkipMissingName})
			continue
		}
		if len(d.Value) == 0 {
			ex.Skipped = append(ex.Skipped, Skip{Index: i, Key: *d.Name, Reason: SkipMissingValue})
			continue
		}
		ex.Mapping.Set(*d.Name, d.Value[0])
	}
}

// items walks down to the string items of the package.
func (doc *lspkgDocument) items() ([]lspkgItem, error) {
	if len(doc.FileDataList) == 0 {
		return nil, fmt.Errorf("%w: no FileDataList element", ErrMalformedSource)
	}
	fileData := doc.FileDataList[0].FileData
	if len(fileData) <= lspkgFileDataIndex {
		return nil, fmt.Errorf("%w: expected at least %d FileData elements, got %d",
			ErrMalformedSource, lspkgFileDataIndex+1, len(fileData))
	}
	lcx := fileData[lspkgFileDataIndex].LCX
	if len(lcx) == 0 {
		return nil, fmt.Errorf("%w: no LCX element in FileData #%d", ErrMalformedSource, lspkgFileDataIndex+1)
	}
	node := lcx[0]
	for depth := 0; depth < 2; depth++ {
		if len(node.Items) == 0 {
			return nil, fmt.Errorf("%w: LCX item group at depth %d is empty", ErrMalformedSource, depth+1)
		}
		node = node.Items[0]
	}
	return node.Items, nil
}

func extractLspkg(items []lspkgItem, ex *Extraction) {
	for i, it := range items {
		if it.ItemID == nil {
			ex.Skipped = append(ex.Skipped, Skip{Index: i, Reason: SkipMissingItemID})
			continue
		}
		key := trimSeparator(*it.ItemID)
		val, ok := it.target()
		if !ok {
			ex.Skipped = append(ex.Skipped, Skip{Index: i, Key: key, Reason: SkipMissingTarget})
			continue
		}
		ex.Mapping.Set(key, Unescape(val))
	}
}

func (it *lspkgItem) target() (string, bool) {
	if len(it.Str) == 0 || len(it.Str[0].Tgt) == 0 || len(it.Str[0].Tgt[0].Val) == 0 {
		return "", false
	}
	return it.Str[0].Tgt[0].Val[0], true
}

// trimSeparator drops the leading separator character of an ItemId (";key").
func trimSeparator(id string) string {
	_, size := utf8.DecodeRuneInString(id)
	return id[size:]
}
