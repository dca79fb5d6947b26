// Package pdf extracts plain text from uploaded PDF documents.
package pdf

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Upload ceilings enforced before any extraction work happens.
const (
	MaxSize  = 25 * 1024 * 1024 // 25 MB
	MaxPages = 100
)

// Validation is the result of a pre-extraction check.
type Validation struct {
	Valid     bool
	PageCount int
	FileSize  int64
	Err       string
}

// Extraction holds the text pulled out of a document. PageTexts is keyed by
// 1-indexed page number.
type Extraction struct {
	Text       string
	PageTexts  map[int]string
	TotalPages int
}

// Validate checks size and page-count ceilings without extracting anything.
// Callers must validate before calling Extract.
func Validate(path string) Validation {
	info, err := os.Stat(path)
	if err != nil {
		return Validation{Err: fmt.Sprintf("Unable to read PDF: %v", err)}
	}
	if info.Size() > MaxSize {
		return Validation{Err: fmt.Sprintf("PDF exceeds maximum size of %d MB", MaxSize/(1024*1024))}
	}

	pages, err := pageCount(path)
	if err != nil {
		return Validation{Err: fmt.Sprintf("Unable to read PDF: %v", err)}
	}
	if pages > MaxPages {
		return Validation{PageCount: pages, Err: fmt.Sprintf("PDF exceeds maximum page count of %d", MaxPages)}
	}

	return Validation{Valid: true, PageCount: pages, FileSize: info.Size()}
}

// Extract pulls plain text from every page, or from the given 1-indexed
// pages only. Out-of-range page numbers are dropped silently; an empty
// selection after filtering yields an empty extraction, not an error.
func Extract(path string, pageRange ...int) (*Extraction, error) {
	f, r, err := open(path)
	if err != nil {
		return nil, fmt.Errorf("error extracting text from PDF: %w", err)
	}
	defer f.Close()

	total := r.NumPage()

	pages := pageRange
	if len(pages) == 0 {
		pages = make([]int, 0, total)
		for i := 1; i <= total; i++ {
			pages = append(pages, i)
		}
	}

	var parts []string
	pageTexts := make(map[int]string)
	for _, n := range pages {
		if n < 1 || n > total {
			continue
		}
		text, err := pageText(r, n)
		if err != nil {
			return nil, fmt.Errorf("error extracting text from PDF: %w", err)
		}
		parts = append(parts, text)
		pageTexts[n] = text
	}

	return &Extraction{
		Text:       strings.Join(parts, "\n\n"),
		PageTexts:  pageTexts,
		TotalPages: total,
	}, nil
}

// open wraps pdf.Open, converting the library's panics on malformed
// cross-reference tables into errors.
func open(path string) (f *os.File, r *pdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if f != nil {
				f.Close()
			}
			f, r = nil, nil
			err = fmt.Errorf("corrupt PDF structure: %v", rec)
		}
	}()
	f, r, err = pdf.Open(path)
	return f, r, err
}

func pageCount(path string) (n int, err error) {
	f, r, err := open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("corrupt PDF structure: %v", rec)
		}
	}()
	return r.NumPage(), nil
}

func pageText(r *pdf.Reader, n int) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text, err = "", fmt.Errorf("corrupt page %d: %v", n, rec)
		}
	}()
	p := r.Page(n)
	if p.V.IsNull() {
		return "", nil
	}
	return p.GetPlainText(nil)
}
