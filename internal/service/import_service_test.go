package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	appErrors "github.com/noah-isme/journal-portal/pkg/errors"
)

func buildSheet(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellRef, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestImportValidatorCountsRows(t *testing.T) {
	v := NewImportValidator(0)
	content := buildSheet(t, [][]interface{}{
		{"ФИО", "Пароль"},
		{"Иванов Иван", "secret1"},
		{"", ""},
		{"Петрова Анна", "пароль"},
	})

	check, err := v.Validate("group.xlsx", content)
	require.NoError(t, err)
	assert.True(t, check.Checked)
	assert.Equal(t, 2, check.Rows)
	assert.Empty(t, check.Warnings)
}

func TestImportValidatorWarnsOnShortPasswords(t *testing.T) {
	v := NewImportValidator(0)
	content := buildSheet(t, [][]interface{}{
		{"ФИО", "Пароль"},
		{"Иванов Иван", "pass1"},
		{"Петрова Анна", "secret2"},
	})

	check, err := v.Validate("group.xlsx", content)
	require.NoError(t, err)
	assert.Equal(t, 2, check.Rows)
	require.Len(t, check.Warnings, 1)
	assert.Equal(t, 2, check.Warnings[0].Row)
}

func TestImportValidatorForwardsLegacyWorkbooks(t *testing.T) {
	v := NewImportValidator(0)
	content := buildSheet(t, [][]interface{}{
		{"ФИО", "Пароль"},
		{"Иванов Иван", "secret1"},
	})

	check, err := v.Validate("group.XLS", content)
	require.NoError(t, err)
	assert.False(t, check.Checked)
	assert.Zero(t, check.Rows)

	check, err = v.Validate("group.xls", []byte{0xD0, 0xCF, 0x11, 0xE0})
	require.NoError(t, err)
	assert.False(t, check.Checked)
}

func TestImportValidatorListsBadRows(t *testing.T) {
	v := NewImportValidator(0)
	content := buildSheet(t, [][]interface{}{
		{"ФИО", "Пароль"},
		{"", "secret1"},
		{"Петрова Анна", ""},
		{"Сидоров", "123"},
	})

	_, err := v.Validate("group.xlsx", content)
	var importErr *ImportError
	require.True(t, errors.As(err, &importErr))
	require.Len(t, importErr.Problems, 2)
	assert.Equal(t, 2, importErr.Problems[0].Row)
	assert.Equal(t, "full name is missing", importErr.Problems[0].Reason)
	assert.Equal(t, 3, importErr.Problems[1].Row)
	assert.Equal(t, "password is missing", importErr.Problems[1].Reason)
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestImportValidatorRejectsFiles(t *testing.T) {
	v := NewImportValidator(64)
	cases := []struct {
		name     string
		filename string
		content  []byte
	}{
		{"empty", "a.xlsx", nil},
		{"too large", "a.xlsx", make([]byte, 65)},
		{"wrong extension", "a.csv", []byte("name,password")},
		{"not a workbook", "a.xlsx", []byte("plain text")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := v.Validate(tc.filename, tc.content)
			assert.True(t, errors.Is(err, appErrors.ErrValidation), fmt.Sprintf("%v", err))
		})
	}
}

func TestImportValidatorRequiresStudentRows(t *testing.T) {
	v := NewImportValidator(0)
	_, err := v.Validate("group.xlsx", buildSheet(t, [][]interface{}{{"ФИО", "Пароль"}}))
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}
