package record

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderScansSampleFile(t *testing.T) {
	f, err := os.Open("testdata/sample.lcov")
	require.NoError(t, err)
	defer f.Close()

	r := NewReader(f)
	var kinds []Kind
	for r.Scan() {
		kinds = append(kinds, r.Record().Kind)
	}
	require.NoError(t, r.Err())

	assert.Equal(t, []Kind{
		KindTestName, KindSourceFile,
		KindFunctionName, KindFunctionData, KindFunctionsFound, KindFunctionsHit,
		KindBranchData, KindBranchData, KindBranchesFound, KindBranchesHit,
		KindLineData, KindLineData, KindLinesFound, KindLinesHit,
		KindEndOfRecord,
	}, kinds)
}

func TestReaderSkipsBlankLines(t *testing.T) {
	r := NewReader(strings.NewReader("TN:t1\n\n\nSF:foo.c\n\nend_of_record\n"))

	var kinds []Kind
	for r.Scan() {
		kinds = append(kinds, r.Record().Kind)
	}
	require.NoError(t, r.Err())
	assert.Equal(t, []Kind{KindTestName, KindSourceFile, KindEndOfRecord}, kinds)
}

func TestReaderStopsOnMalformedLine(t *testing.T) {
	r := NewReader(strings.NewReader("TN:t1\nnotarecordatall\n"))

	require.True(t, r.Scan())
	assert.Equal(t, KindTestName, r.Record().Kind)

	require.False(t, r.Scan())
	require.Error(t, r.Err())

	var parseErr *ParseError
	require.ErrorAs(t, r.Err(), &parseErr)
}

func TestParseLineData(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected LineData
		wantErr  bool
	}{
		{name: "no checksum", input: "10,1", expected: LineData{Line: 10, Count: 1}},
		{name: "with checksum", input: "10,1,abc123", expected: LineData{Line: 10, Count: 1, Checksum: strPtr("abc123")}},
		{name: "trailing empty checksum", input: "10,1,", expected: LineData{Line: 10, Count: 1}},
		{name: "missing count", input: "10", wantErr: true},
		{name: "non-numeric line", input: "x,1", wantErr: true},
		{name: "non-numeric count", input: "10,x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLineData(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected.Line, got.Line)
			assert.Equal(t, tt.expected.Count, got.Count)
			if tt.expected.Checksum == nil {
				assert.Nil(t, got.Checksum)
			} else {
				require.NotNil(t, got.Checksum)
				assert.Equal(t, *tt.expected.Checksum, *got.Checksum)
			}
		})
	}
}

func TestParseFunctionName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    FunctionNameData
		wantErr bool
	}{
		{name: "valid", input: "5,main", want: FunctionNameData{Line: 5, Name: "main"}},
		{name: "empty name", input: "5,", wantErr: true},
		{name: "missing comma", input: "5main", wantErr: true},
		{name: "non-numeric line", input: "x,main", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFunctionName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFunctionData(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    FunctionExecData
		wantErr bool
	}{
		{name: "valid", input: "3,main", want: FunctionExecData{Name: "main", Count: 3}},
		{name: "empty name", input: "3,", wantErr: true},
		{name: "non-numeric count", input: "x,main", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFunctionData(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseBranchData(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    BranchData
		wantErr bool
	}{
		{name: "valid", input: "1,0,1,3", want: BranchData{Line: 1, Block: 0, Branch: 1, Taken: 3}},
		{name: "dash means zero", input: "1,0,1,-", want: BranchData{Line: 1, Block: 0, Branch: 1, Taken: 0}},
		{name: "too few fields", input: "1,0,1", wantErr: true},
		{name: "non-numeric taken", input: "1,0,1,x", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBranchData(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCount(t *testing.T) {
	got, err := ParseCount(KindLinesFound, "42")
	require.NoError(t, err)
	assert.Equal(t, uint32(42), got)

	_, err = ParseCount(KindLinesFound, "nope")
	assert.Error(t, err)
}

func strPtr(s string) *string { return &s }
