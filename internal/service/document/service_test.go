package document

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/oshokin/docformat/internal/config"
	"github.com/oshokin/docformat/internal/formatter"
	"github.com/oshokin/docformat/internal/schema"
	mock_document "github.com/oshokin/docformat/internal/service/document/mocks"
)

func TestProcess_Detect(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	inputs := []string{
		writeTestFile(t, dir, "a.json", `{"a":1}`),
		writeTestFile(t, dir, "b.yaml", "a: 1\n"),
		writeTestFile(t, dir, "c.txt", "42"),
	}

	service := newTestService(t, "")

	results, err := service.Process(t.Context(), Request{
		Operation: OperationDetect,
		Inputs:    inputs,
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Results keep the order of the inputs.
	for i, expected := range []formatter.Format{formatter.JSON, formatter.YAML, formatter.Undetermined} {
		assert.Equal(t, inputs[i], results[i].Input)
		assert.Equal(t, expected, results[i].Format)
		require.NoError(t, results[i].Err)
	}
}

func TestProcess_FormatToStdout(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeTestFile(t, dir, "doc.json", `{"b":1,"a":[1,2]}`)

	service := newTestService(t, "")

	results, err := service.Process(t.Context(), Request{
		Operation: OperationFormat,
		Inputs:    []string{input},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)

	result := results[0]
	require.NoError(t, result.Err)
	assert.Equal(t, formatter.JSON, result.Format)
	assert.Equal(t, formatter.JSON, result.OutputFormat)
	assert.Equal(t, "{\n  \"b\": 1,\n  \"a\": [\n    1,\n    2\n  ]\n}", result.Output)
	assert.Empty(t, result.Destination)

	// The input is untouched when nothing asks for a file to be written.
	assert.JSONEq(t, `{"b":1,"a":[1,2]}`, readTestFile(t, input))

	stats := service.Statistics()
	assert.Equal(t, int64(1), stats.FilesProcessed)
	assert.Equal(t, int64(1), stats.FilesSucceeded)
	assert.Equal(t, int64(0), stats.FilesWritten)
}

func TestProcess_Stdin(t *testing.T) {
	t.Parallel()

	service := newTestService(t, "name: Ana\nage: 30\n")

	results, err := service.Process(t.Context(), Request{Operation: OperationConvert})
	require.NoError(t, err)
	require.Len(t, results, 1)

	result := results[0]
	require.NoError(t, result.Err)
	assert.Equal(t, "-", result.Input)
	assert.Equal(t, formatter.YAML, result.Format)
	assert.Equal(t, formatter.JSON, result.OutputFormat)
	assert.JSONEq(t, `{"name":"Ana","age":30}`, result.Output)
}

func TestProcess_ConvertToOutputPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	outputDir := filepath.Join(t.TempDir(), "out", "nested")
	input := writeTestFile(t, dir, "config.json", `{"port":8080,"debug":true}`)

	service := newTestService(t, "")

	results, err := service.Process(t.Context(), Request{
		Operation:  OperationConvert,
		Inputs:     []string{input},
		OutputPath: outputDir,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)

	result := results[0]
	require.NoError(t, result.Err)

	expectedPath := filepath.Join(outputDir, "config.yaml")
	assert.Equal(t, expectedPath, result.Destination)
	assert.Equal(t, "port: 8080\ndebug: true\n", readTestFile(t, expectedPath))
	assert.Equal(t, int64(len("port: 8080\ndebug: true\n")), result.OutputSize)

	stats := service.Statistics()
	assert.Equal(t, int64(1), stats.FilesWritten)
	assert.Equal(t, result.OutputSize, stats.BytesWritten)
}

func TestProcess_WriteInPlace(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeTestFile(t, dir, "doc.json", `{"a": [1, 2]}`)

	service := newTestService(t, "")

	results, err := service.Process(t.Context(), Request{
		Operation:    OperationMinify,
		Inputs:       []string{input},
		WriteInPlace: true,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)

	assert.Equal(t, input, results[0].Destination)
	assert.Equal(t, "{\"a\":[1,2]}\n", readTestFile(t, input))
}

func TestProcess_ForcedFormat(t *testing.T) {
	t.Parallel()

	// Valid JSON is also valid YAML; forcing YAML formats it as YAML.
	service := newTestService(t, `{"a": 1}`)

	results, err := service.Process(t.Context(), Request{
		Operation: OperationFormat,
		Format:    formatter.YAML,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)

	assert.Equal(t, formatter.YAML, results[0].Format)
	assert.Equal(t, "a: 1\n", results[0].Output)
}

func TestProcess_Validate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	inputs := []string{
		writeTestFile(t, dir, "good.json", `{"a":1}`),
		writeTestFile(t, dir, "bad.json", "{\n  \"a\": 1,\n}"),
	}

	service := newTestService(t, "")

	results, err := service.Process(t.Context(), Request{
		Operation: OperationValidate,
		Inputs:    inputs,
		Format:    formatter.JSON,
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	require.NotNil(t, results[0].Validation)
	assert.True(t, results[0].IsValid())

	require.NotNil(t, results[1].Validation)
	assert.False(t, results[1].IsValid())
	assert.False(t, results[1].Failed())
	assert.Equal(t, 3, results[1].Validation.LineNumber)
	assert.NotEmpty(t, results[1].Validation.ErrorMessage)

	stats := service.Statistics()
	assert.Equal(t, int64(2), stats.FilesSucceeded)
	assert.Equal(t, int64(1), stats.FilesInvalid)
}

func TestProcess_ValidateWithSchema(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockEngine := mock_document.NewMockEngine(ctrl)
	mockValidator := mock_document.NewMockSchemaValidator(ctrl)

	const content = "name: Ana\n"

	mockEngine.EXPECT().Detect(content).Return(formatter.YAML)
	mockEngine.EXPECT().
		Validate(content, formatter.YAML).
		Return(formatter.ValidationResult{Valid: true})
	mockValidator.EXPECT().
		Validate(content, formatter.YAML).
		Return(schema.Result{Errors: []string{"/: missing property 'age'"}})

	service := NewService(newTestConfig(t), mockEngine, mockValidator, strings.NewReader(content))

	results, err := service.Process(t.Context(), Request{Operation: OperationValidate})
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.False(t, results[0].IsValid())
	assert.Equal(t, []string{"/: missing property 'age'"}, results[0].SchemaErrors)
}

func TestProcess_SchemaSkippedForInvalidDocument(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockEngine := mock_document.NewMockEngine(ctrl)
	mockValidator := mock_document.NewMockSchemaValidator(ctrl)

	const content = "a: [1"

	mockEngine.EXPECT().Detect(content).Return(formatter.Undetermined)
	mockEngine.EXPECT().
		Validate(content, formatter.YAML).
		Return(formatter.ValidationResult{ErrorMessage: "did not find expected ',' or ']'", LineNumber: 1})

	service := NewService(newTestConfig(t), mockEngine, mockValidator, strings.NewReader(content))

	results, err := service.Process(t.Context(), Request{
		Operation: OperationValidate,
		Inputs:    []string{"-"},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)

	// Standard input has no extension to fall back on.
	require.ErrorIs(t, results[0].Err, ErrUndeterminedFormat)

	service = NewService(newTestConfig(t), mockEngine, mockValidator, strings.NewReader(content))

	results, err = service.Process(t.Context(), Request{
		Operation: OperationValidate,
		Format:    formatter.YAML,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	assert.False(t, results[0].IsValid())
	assert.Equal(t, 1, results[0].Validation.LineNumber)
}

func TestProcess_MinifyRejectsYAML(t *testing.T) {
	t.Parallel()

	service := newTestService(t, "a: 1\n")

	results, err := service.Process(t.Context(), Request{Operation: OperationMinify})
	require.NoError(t, err)
	require.Len(t, results, 1)

	require.ErrorIs(t, results[0].Err, formatter.ErrMinifyNotSupported)

	var formatErr *formatter.FormatError
	require.ErrorAs(t, results[0].Err, &formatErr)
	assert.Equal(t, formatter.YAML, formatErr.Format)
	assert.Equal(t, int64(1), service.Statistics().FilesFailed)
}

func TestProcess_MinifyPassesResolvedFormat(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockEngine := mock_document.NewMockEngine(ctrl)

	const content = `{"a": 1}`

	mockEngine.EXPECT().Detect(content).Return(formatter.JSON)
	mockEngine.EXPECT().MinifyAs(content, formatter.JSON).Return(`{"a":1}`, nil)

	service := NewService(newTestConfig(t), mockEngine, nil, strings.NewReader(content))

	results, err := service.Process(t.Context(), Request{Operation: OperationMinify})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)

	assert.Equal(t, `{"a":1}`, results[0].Output)
	assert.Equal(t, formatter.JSON, results[0].OutputFormat)
}

func TestProcess_FormatErrorIsReported(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeTestFile(t, dir, "broken.json", "{\"a\":\n")

	service := newTestService(t, "")

	results, err := service.Process(t.Context(), Request{
		Operation: OperationFormat,
		Inputs:    []string{input},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)

	// Detection fails on broken input, so the extension decides the format.
	assert.Equal(t, formatter.JSON, results[0].Format)

	var formatErr *formatter.FormatError
	require.ErrorAs(t, results[0].Err, &formatErr)
	assert.Equal(t, formatter.JSON, formatErr.Format)
}

func TestProcess_RequestErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		request     Request
		overrides   []func(*config.Config)
		expectedErr error
	}{
		{
			name:        "unknown operation",
			request:     Request{Operation: "lint"},
			expectedErr: ErrUnknownOperation,
		},
		{
			name:        "standard input named twice",
			request:     Request{Operation: OperationDetect, Inputs: []string{"-", "-"}},
			expectedErr: ErrStdinRepeated,
		},
		{
			name:    "too many files",
			request: Request{Operation: OperationDetect, Inputs: []string{"a.json", "b.json", "c.json"}},
			overrides: []func(*config.Config){
				func(cfg *config.Config) { cfg.MaxFiles = 2 },
			},
			expectedErr: ErrTooManyFiles,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			service := newTestService(t, "", tt.overrides...)

			results, err := service.Process(t.Context(), tt.request)
			require.ErrorIs(t, err, tt.expectedErr)
			assert.Nil(t, results)
		})
	}
}

func TestProcess_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	service := newTestService(t, `{"a":1}`)

	results, err := service.Process(ctx, Request{Operation: OperationFormat})
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results)
}

func TestProcess_ManyFilesConcurrently(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	inputs := make([]string, 0, 10)

	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"} {
		inputs = append(inputs, writeTestFile(t, dir, name+".yaml", "key: "+name+"\n"))
	}

	service := newTestService(t, "", func(cfg *config.Config) {
		cfg.MaxConcurrentFiles = 3
	})

	results, err := service.Process(t.Context(), Request{
		Operation: OperationConvert,
		Inputs:    inputs,
	})
	require.NoError(t, err)
	require.Len(t, results, len(inputs))

	for i, result := range results {
		require.NoError(t, result.Err)
		assert.Equal(t, inputs[i], result.Input)
		assert.Contains(t, result.Output, `"key": "`+strings.TrimSuffix(filepath.Base(inputs[i]), ".yaml")+`"`)
	}

	assert.Equal(t, int64(len(inputs)), service.Statistics().FilesSucceeded)
}
