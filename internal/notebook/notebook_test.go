// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notebook

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/notebook-converter/pkg/types"
)

const sampleNotebook = `{
 "cells": [
  {
   "cell_type": "markdown",
   "metadata": {},
   "source": ["# Analysis\n", "\n", "Load the data."]
  },
  {
   "cell_type": "code",
   "execution_count": 1,
   "metadata": {},
   "outputs": [],
   "source": "import pandas as pd\ndf = pd.read_csv('data.csv')"
  },
  {
   "cell_type": "raw",
   "metadata": {},
   "source": []
  }
 ],
 "metadata": {
  "kernelspec": {"display_name": "Python 3", "language": "python", "name": "python3"},
  "language_info": {"name": "python", "version": "3.11.4"}
 },
 "nbformat": 4,
 "nbformat_minor": 5
}`

func TestParse(t *testing.T) {
	nb, err := Parse(strings.NewReader(sampleNotebook))
	require.NoError(t, err)

	assert.Equal(t, 4, nb.NBFormat)
	assert.Equal(t, 5, nb.NBFormatMinor)
	assert.Equal(t, "python", nb.Language)

	want := types.CellSequence{
		{Kind: types.CellProse, Source: "# Analysis\n\nLoad the data."},
		{Kind: types.CellCode, Source: "import pandas as pd\ndf = pd.read_csv('data.csv')"},
		{Kind: types.CellKind("raw"), Source: ""},
	}
	assert.Equal(t, want, nb.Cells)
}

func TestParseBytes_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{name: "empty document", input: "  \n", wantMsg: "empty document"},
		{name: "not JSON", input: "Please upload a valid notebook file.", wantMsg: "invalid JSON"},
		{name: "missing nbformat", input: `{"cells": []}`, wantMsg: "missing nbformat"},
		{name: "old nbformat", input: `{"nbformat": 3, "worksheets": []}`, wantMsg: "unsupported nbformat 3"},
		{name: "missing cells", input: `{"nbformat": 4}`, wantMsg: "missing cells"},
		{name: "cell without type", input: `{"nbformat": 4, "cells": [{"source": "x"}]}`, wantMsg: "cell 0: missing cell_type"},
		{name: "bad source", input: `{"nbformat": 4, "cells": [{"cell_type": "code", "source": 42}]}`, wantMsg: "source must be"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBytes([]byte(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrParse)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestParseBytes_SourceEncodings(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{name: "string", source: `"a\nb"`, want: "a\nb"},
		{name: "list", source: `["a\n", "b"]`, want: "a\nb"},
		{name: "empty list", source: `[]`, want: ""},
		{name: "null", source: `null`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `{"nbformat": 4, "nbformat_minor": 4, "metadata": {}, "cells": [{"cell_type": "code", "source": ` + tt.source + `}]}`
			nb, err := ParseBytes([]byte(doc))
			require.NoError(t, err)
			require.Len(t, nb.Cells, 1)
			assert.Equal(t, tt.want, nb.Cells[0].Source)
		})
	}
}

func TestParseBytes_LanguageFallback(t *testing.T) {
	doc := `{"nbformat": 4, "metadata": {"kernelspec": {"language": "julia"}}, "cells": []}`
	nb, err := ParseBytes([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "julia", nb.Language)
	assert.Empty(t, nb.Cells)
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.ipynb")
	require.NoError(t, os.WriteFile(good, []byte(sampleNotebook), 0o644))

	nb, err := ParseFile(good)
	require.NoError(t, err)
	assert.Len(t, nb.Cells, 3)

	bad := filepath.Join(dir, "bad.ipynb")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o644))

	_, err = ParseFile(bad)
	assert.ErrorIs(t, err, ErrParse)
	assert.Contains(t, err.Error(), "invalid JSON")
	assert.NotContains(t, err.Error(), "bad.ipynb", "callers add the path")

	_, err = ParseFile(filepath.Join(dir, "missing.ipynb"))
	assert.ErrorIs(t, err, ErrParse)
	assert.Contains(t, err.Error(), "reading file")
	assert.NotContains(t, err.Error(), "missing.ipynb", "callers add the path")
}
