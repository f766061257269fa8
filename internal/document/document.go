// Package document provides the statement-document handle consumed by the
// parser variants. It does not perform OCR or layout analysis itself: a
// document exposes page-level text and row-structured tables that an
// upstream extractor already produced.
package document

import (
	"bytes"
	"crypto/sha256"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mlsantos/pitaka/internal/common"
)

// Table is one extracted table: rows of cell strings.
type Table [][]string

// Document is an opaque handle over one statement document.
type Document interface {
	// Path returns the originating file path, if any.
	Path() string
	// PageCount returns the number of pages.
	PageCount() int
	// PageText returns the extracted text of a page.
	PageText(page int) string
	// PageTables returns the extracted tables of a page.
	PageTables(page int) []Table
	// Fingerprint returns a stable content hash of the raw document.
	Fingerprint() string
}

// Page holds the extracted content of a single page.
type Page struct {
	Text   string  `json:"text"`
	Tables []Table `json:"tables,omitempty"`
}

// File is a Document backed by an extracted-statement file on disk.
type File struct {
	path        string
	fingerprint string
	pages       []Page
}

// envelope is the JSON layout written by the upstream extractor.
type envelope struct {
	PasswordSHA256 string `json:"password_sha256,omitempty"`
	Pages          []Page `json:"pages"`
}

// Open reads an extracted-statement file. JSON envelopes may be password
// protected; plain text files use a form feed as the page separator, with
// comma-delimited lines grouped into tables. Binary formats the upstream
// extractor has not processed are rejected.
func Open(path, password string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	if bytes.HasPrefix(raw, []byte("%PDF")) {
		return nil, fmt.Errorf("%w: raw PDF must be extracted upstream", common.ErrUnsupportedFormat)
	}

	f := &File{
		path:        path,
		fingerprint: fmt.Sprintf("%x", sha256.Sum256(raw)),
	}

	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if bytes.HasPrefix(trimmed, []byte("{")) {
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("failed to parse document envelope: %w", err)
		}
		if env.PasswordSHA256 != "" {
			supplied := fmt.Sprintf("%x", sha256.Sum256([]byte(password)))
			if password == "" {
				return nil, common.ErrPasswordRequired
			}
			if supplied != env.PasswordSHA256 {
				return nil, fmt.Errorf("%w: wrong password", common.ErrPasswordRequired)
			}
		}
		f.pages = env.Pages
		return f, nil
	}

	for _, pageText := range strings.Split(string(raw), "\f") {
		f.pages = append(f.pages, Page{
			Text:   pageText,
			Tables: tablesFromText(pageText),
		})
	}
	return f, nil
}

// FromPages builds an in-memory document, used by tests and by callers that
// already hold extracted content.
func FromPages(path string, pages []Page) *File {
	var buf bytes.Buffer
	for i := range pages {
		buf.WriteString(pages[i].Text)
	}
	return &File{
		path:        path,
		fingerprint: fmt.Sprintf("%x", sha256.Sum256(buf.Bytes())),
		pages:       pages,
	}
}

// Path returns the originating file path.
func (f *File) Path() string { return f.path }

// PageCount returns the number of pages.
func (f *File) PageCount() int { return len(f.pages) }

// PageText returns the text of the given page, or empty if out of range.
func (f *File) PageText(page int) string {
	if page < 0 || page >= len(f.pages) {
		return ""
	}
	return f.pages[page].Text
}

// PageTables returns the tables of the given page, or nil if out of range.
func (f *File) PageTables(page int) []Table {
	if page < 0 || page >= len(f.pages) {
		return nil
	}
	return f.pages[page].Tables
}

// Fingerprint returns the sha256 of the raw document content.
func (f *File) Fingerprint() string { return f.fingerprint }

// tablesFromText groups consecutive comma-delimited lines into one table.
// Lines without at least two cells are treated as prose and break the run.
func tablesFromText(text string) []Table {
	var tables []Table
	var current Table

	flush := func() {
		if len(current) > 0 {
			tables = append(tables, current)
			current = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" || !strings.Contains(line, ",") {
			flush()
			continue
		}
		r := csv.NewReader(strings.NewReader(line))
		r.FieldsPerRecord = -1
		cells, err := r.Read()
		if err != nil || len(cells) < 2 {
			flush()
			continue
		}
		for i := range cells {
			cells[i] = strings.TrimSpace(cells[i])
		}
		current = append(current, cells)
	}
	flush()
	return tables
}
