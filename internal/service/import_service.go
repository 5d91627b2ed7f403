package service

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/noah-isme/journal-portal/internal/dto"
	appErrors "github.com/noah-isme/journal-portal/pkg/errors"
)

// Passwords shorter than this are reported as warnings; the server owns the rule.
const shortImportPassword = 6

// ImportValidator checks a student spreadsheet before it is forwarded: two columns
// (full name, login password) on the first sheet, first row is the header.
// Legacy .xls workbooks cannot be read here and are forwarded unchecked.
type ImportValidator struct {
	maxBytes int64
}

// NewImportValidator constructs a validator. A non-positive limit means 5 MiB.
func NewImportValidator(maxBytes int64) *ImportValidator {
	if maxBytes <= 0 {
		maxBytes = 5 << 20
	}
	return &ImportValidator{maxBytes: maxBytes}
}

// ImportCheck is the outcome of a successful pre-upload check.
type ImportCheck struct {
	Rows     int
	Checked  bool
	Warnings []dto.ImportRowError
}

// Validate counts the student rows of an .xlsx workbook, or returns a validation error
// listing the bad rows. An .xls workbook passes with Checked unset.
func (v *ImportValidator) Validate(filename string, content []byte) (*ImportCheck, error) {
	if len(content) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "file is empty")
	}
	if int64(len(content)) > v.maxBytes {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("file exceeds %d bytes", v.maxBytes))
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
	case ".xls":
		return &ImportCheck{}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "only .xlsx or .xls spreadsheets are accepted")
	}

	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "file is not a readable spreadsheet")
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "spreadsheet has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "read spreadsheet rows")
	}

	check := &ImportCheck{Checked: true}
	var problems []dto.ImportRowError
	for i, row := range rows {
		if i == 0 {
			continue
		}
		name, password := cell(row, 0), cell(row, 1)
		if name == "" && password == "" {
			continue
		}
		switch {
		case name == "":
			problems = append(problems, dto.ImportRowError{Row: i + 1, Reason: "full name is missing"})
		case password == "":
			problems = append(problems, dto.ImportRowError{Row: i + 1, Reason: "password is missing"})
		default:
			check.Rows++
			if utf8.RuneCountInString(password) < shortImportPassword {
				check.Warnings = append(check.Warnings, dto.ImportRowError{Row: i + 1, Reason: fmt.Sprintf("password is shorter than %d characters", shortImportPassword)})
			}
		}
	}
	if len(problems) > 0 {
		return nil, &ImportError{Problems: problems}
	}
	if check.Rows == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "spreadsheet has no student rows")
	}
	return check, nil
}

// ImportError lists rejected spreadsheet rows. It matches appErrors.ErrValidation.
type ImportError struct {
	Problems []dto.ImportRowError
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("%d spreadsheet rows are invalid", len(e.Problems))
}

// Unwrap exposes the validation error so responses map it to 400.
func (e *ImportError) Unwrap() error {
	return appErrors.Clone(appErrors.ErrValidation, e.Error())
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
