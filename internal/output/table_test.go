package output

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestTable(t *testing.T) {
	tbl := NewTable("MODULE", "VERSION").
		Row("@openimis/fe-core", "1.5.1").
		Row("@openimis/fe-home", "2.0.0")

	out := tbl.String()
	assert.Contains(t, out, "MODULE")
	assert.Contains(t, out, "@openimis/fe-core")
	assert.Contains(t, out, "2.0.0")
	assert.Less(t, strings.Index(out, "fe-core"), strings.Index(out, "fe-home"))
}

func TestTableSetStyle(t *testing.T) {
	style := DefaultTableStyle()
	style.Border = lipgloss.HiddenBorder()

	out := NewTable("A").Row("x").SetStyle(style).String()
	assert.Contains(t, out, "x")
	assert.NotContains(t, out, "│")
}
