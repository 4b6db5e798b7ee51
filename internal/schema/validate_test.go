package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/docformat/internal/constants"
	"github.com/oshokin/docformat/internal/formatter"
)

const personSchemaJSON = `{
  "type": "object",
  "required": ["name", "age"],
  "properties": {
    "name": {"type": "string"},
    "age": {"type": "integer", "minimum": 0}
  }
}`

const personSchemaYAML = `type: object
required: [name, age]
properties:
  name:
    type: string
  age:
    type: integer
    minimum: 0
`

// TestCompile tests the Compile function.
func TestCompile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		schema  string
		wantErr bool
	}{
		{name: "JSON schema", schema: personSchemaJSON},
		{name: "YAML schema", schema: personSchemaYAML},
		{name: "undetermined schema", schema: "42", wantErr: true},
		{name: "invalid keyword value", schema: `{"type": 12}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			validator, err := Compile(tt.schema)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, validator)

				return
			}

			require.NoError(t, err)
			assert.NotNil(t, validator)
		})
	}
}

// TestValidator_Validate tests the Validate method.
func TestValidator_Validate(t *testing.T) {
	t.Parallel()

	validator, err := Compile(personSchemaYAML)
	require.NoError(t, err)

	tests := []struct {
		name           string
		input          string
		format         formatter.Format
		expectedValid  bool
		expectedError  string
	}{
		{
			name:          "valid JSON document",
			input:         `{"name":"Ana","age":30}`,
			format:        formatter.JSON,
			expectedValid: true,
		},
		{
			name:          "valid YAML document",
			input:         "name: Ana\nage: 30\n",
			format:        formatter.YAML,
			expectedValid: true,
		},
		{
			name:           "missing property",
			input:          `{"name":"Ana"}`,
			format:         formatter.JSON,
			expectedError:  "missing property",
		},
		{
			name:   "wrong types",
			input:  "name: 7\nage: -1\n",
			format: formatter.YAML,
		},
		{
			name:   "unparsable document",
			input:  `{"name":`,
			format: formatter.JSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := validator.Validate(tt.input, tt.format)
			assert.Equal(t, tt.expectedValid, result.Valid)

			if tt.expectedValid {
				assert.Empty(t, result.Errors)

				return
			}

			assert.NotEmpty(t, result.Errors)

			if tt.expectedError != "" {
				require.Len(t, result.Errors, 1)
				assert.Contains(t, result.Errors[0], tt.expectedError)
				assert.Contains(t, result.Errors[0], "age")
			}
		})
	}
}

// TestCompileFile tests the CompileFile function.
func TestCompileFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "person.schema.json")
	require.NoError(t, os.WriteFile(path, []byte(personSchemaJSON), constants.DefaultFilePermissions))

	validator, err := CompileFile(path)
	require.NoError(t, err)
	assert.True(t, validator.Validate(`{"name":"Ana","age":1}`, formatter.JSON).Valid)

	_, err = CompileFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read schema")
}
