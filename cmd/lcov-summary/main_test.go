package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmdPrintsSummaryTable(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"../../testdata/simple_a.lcov", "../../testdata/simple_b.lcov"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "foo.c")
	assert.Contains(t, out.String(), "TOTAL")
}

func TestRootCmdRequiresAtLeastOneInput(t *testing.T) {
	cmd := newRootCmd()
	cmd.SilenceErrors = true
	cmd.SetArgs([]string{})
	assert.Error(t, cmd.Execute())
}

func TestPercentCellHandlesNoData(t *testing.T) {
	assert.Equal(t, "-", percentCell(0, 0))
	assert.Equal(t, "1/2 (50.0%)", percentCell(1, 2))
}
