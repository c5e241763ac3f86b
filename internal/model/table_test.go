package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableColumns(t *testing.T) {
	tbl := Table{Headers: []string{"Дата операції", "Кредит"}}
	assert.True(t, tbl.HasColumn("Кредит"))
	assert.False(t, tbl.HasColumn("Сума"))
	assert.Equal(t, []string{"Сума", "Опис"}, tbl.MissingColumns("Дата операції", "Сума", "Опис"))
	assert.Nil(t, tbl.MissingColumns("Кредит"))
}

func TestCellEmpty(t *testing.T) {
	row := RawRow{"a": Text("  "), "b": Number("45000")}
	assert.True(t, row.Get("a").Empty())
	assert.True(t, row.Get("missing").Empty())
	assert.False(t, row.Get("b").Empty())
	assert.True(t, row.Get("b").Numeric)
}
