package analyzer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toyz/pyforge/internal/errors"
	"github.com/toyz/pyforge/internal/models"
)

func TestExtractModuleFunctions(t *testing.T) {
	source := `
def first():
    pass

def second(x):
    return x
`

	analyzer := NewAnalyzer()
	descriptors, err := analyzer.ExtractFromSource("sample.py", source)
	require.NoError(t, err)
	require.Len(t, descriptors, 2)

	assert.Equal(t, "first", descriptors[0].Name)
	assert.Equal(t, "second", descriptors[1].Name)
	assert.False(t, descriptors[0].IsMethod)
	assert.False(t, descriptors[0].IsAsync)
	assert.Equal(t, 2, descriptors[0].Lineno)
	assert.Equal(t, 5, descriptors[1].Lineno)

	require.Len(t, descriptors[1].Parameters, 1)
	assert.Equal(t, "x", descriptors[1].Parameters[0].Name)
	assert.Equal(t, models.ParameterKindPositionalOrKeyword, descriptors[1].Parameters[0].Kind)
}

func TestExtractExcludesNestedFunctions(t *testing.T) {
	source := `
def outer():
    def inner():
        pass
    return inner
`

	analyzer := NewAnalyzer()
	descriptors, err := analyzer.ExtractFromSource("sample.py", source)
	require.NoError(t, err)
	require.Len(t, descriptors, 1)
	assert.Equal(t, "outer", descriptors[0].Name)
}

func TestExtractParameterKinds(t *testing.T) {
	source := `
def f(a, b=1, *args, c, **kw):
    pass
`

	analyzer := NewAnalyzer()
	descriptors, err := analyzer.ExtractFromSource("sample.py", source)
	require.NoError(t, err)
	require.Len(t, descriptors, 1)

	params := descriptors[0].Parameters
	require.Len(t, params, 5)

	assert.Equal(t, "a", params[0].Name)
	assert.Equal(t, models.ParameterKindPositionalOrKeyword, params[0].Kind)
	assert.False(t, params[0].HasDefault)

	assert.Equal(t, "b", params[1].Name)
	assert.Equal(t, models.ParameterKindPositionalOrKeyword, params[1].Kind)
	assert.True(t, params[1].HasDefault)
	assert.Equal(t, "1", params[1].Default)

	assert.Equal(t, "args", params[2].Name)
	assert.Equal(t, models.ParameterKindVarPositional, params[2].Kind)

	assert.Equal(t, "c", params[3].Name)
	assert.Equal(t, models.ParameterKindKeywordOnly, params[3].Kind)

	assert.Equal(t, "kw", params[4].Name)
	assert.Equal(t, models.ParameterKindVarKeyword, params[4].Kind)
}

func TestExtractPositionalOnlyParameters(t *testing.T) {
	source := `
def f(a, b, /, c):
    pass
`

	analyzer := NewAnalyzer()
	descriptors, err := analyzer.ExtractFromSource("sample.py", source)
	require.NoError(t, err)
	require.Len(t, descriptors, 1)

	params := descriptors[0].Parameters
	require.Len(t, params, 3)
	assert.Equal(t, models.ParameterKindPositionalOnly, params[0].Kind)
	assert.Equal(t, models.ParameterKindPositionalOnly, params[1].Kind)
	assert.Equal(t, models.ParameterKindPositionalOrKeyword, params[2].Kind)
}

func TestExtractKeywordSeparator(t *testing.T) {
	source := `
def f(a, *, b, c=2):
    pass
`

	analyzer := NewAnalyzer()
	descriptors, err := analyzer.ExtractFromSource("sample.py", source)
	require.NoError(t, err)

	params := descriptors[0].Parameters
	require.Len(t, params, 3)
	assert.Equal(t, models.ParameterKindPositionalOrKeyword, params[0].Kind)
	assert.Equal(t, models.ParameterKindKeywordOnly, params[1].Kind)
	assert.Equal(t, models.ParameterKindKeywordOnly, params[2].Kind)
	assert.True(t, params[2].HasDefault)
}

func TestExtractAnnotations(t *testing.T) {
	source := `
def g(x: int, y: str = "hi", *args: int, **kw: float) -> bool:
    pass
`

	analyzer := NewAnalyzer()
	descriptors, err := analyzer.ExtractFromSource("sample.py", source)
	require.NoError(t, err)

	params := descriptors[0].Parameters
	require.Len(t, params, 4)

	assert.Equal(t, "int", params[0].Annotation)
	assert.False(t, params[0].HasDefault)

	assert.Equal(t, "str", params[1].Annotation)
	assert.Equal(t, `"hi"`, params[1].Default)
	assert.True(t, params[1].HasDefault)

	assert.Equal(t, "args", params[2].Name)
	assert.Equal(t, models.ParameterKindVarPositional, params[2].Kind)

	assert.Equal(t, "kw", params[3].Name)
	assert.Equal(t, models.ParameterKindVarKeyword, params[3].Kind)
}

func TestExtractAsyncFunction(t *testing.T) {
	source := `
async def fetch(url):
    pass
`

	analyzer := NewAnalyzer()
	descriptors, err := analyzer.ExtractFromSource("sample.py", source)
	require.NoError(t, err)
	require.Len(t, descriptors, 1)
	assert.True(t, descriptors[0].IsAsync)
	assert.Equal(t, "fetch", descriptors[0].Name)
}

func TestExtractClassMethods(t *testing.T) {
	source := `
class Worker:
    def run(self, task):
        pass

    @staticmethod
    def helper():
        pass

def standalone():
    pass
`

	analyzer := NewAnalyzer()
	descriptors, err := analyzer.ExtractFromSource("sample.py", source)
	require.NoError(t, err)
	require.Len(t, descriptors, 3)

	assert.Equal(t, "run", descriptors[0].Name)
	assert.Equal(t, "Worker", descriptors[0].ClassName)
	assert.True(t, descriptors[0].IsMethod)
	assert.Equal(t, "Worker.run", descriptors[0].QualifiedName())

	assert.Equal(t, "helper", descriptors[1].Name)
	assert.True(t, descriptors[1].IsMethod)
	assert.Equal(t, []string{"staticmethod"}, descriptors[1].Decorators)

	assert.Equal(t, "standalone", descriptors[2].Name)
	assert.False(t, descriptors[2].IsMethod)
	assert.Empty(t, descriptors[2].ClassName)
}

func TestExtractDecorators(t *testing.T) {
	source := `
@app.route("/health")
@cache
def health():
    pass
`

	analyzer := NewAnalyzer()
	descriptors, err := analyzer.ExtractFromSource("sample.py", source)
	require.NoError(t, err)
	require.Len(t, descriptors, 1)
	assert.Equal(t, []string{`app.route("/health")`, "cache"}, descriptors[0].Decorators)
}

func TestExtractDocstring(t *testing.T) {
	source := `
def documented():
    """Say hello."""
    return 1

def plain():
    return 2
`

	analyzer := NewAnalyzer()
	descriptors, err := analyzer.ExtractFromSource("sample.py", source)
	require.NoError(t, err)
	require.Len(t, descriptors, 2)
	assert.Equal(t, "Say hello.", descriptors[0].Docstring)
	assert.Empty(t, descriptors[1].Docstring)
}

func TestExtractEmptyFile(t *testing.T) {
	analyzer := NewAnalyzer()

	descriptors, err := analyzer.ExtractFromSource("empty.py", "")
	require.NoError(t, err)
	assert.Empty(t, descriptors)

	descriptors, err = analyzer.ExtractFromSource("constants.py", "TIMEOUT = 30\nNAME = 'x'\n")
	require.NoError(t, err)
	assert.Empty(t, descriptors)
}

func TestExtractSyntaxError(t *testing.T) {
	source := `
def broken(
    pass
`

	analyzer := NewAnalyzer()
	_, err := analyzer.ExtractFromSource("broken.py", source)
	require.Error(t, err)
	assert.Equal(t, errors.ParseErrorCode, errors.CodeOf(err))

	forgeErr, ok := err.(errors.ForgeError)
	require.True(t, ok)
	assert.Equal(t, "broken.py", forgeErr.Location().File)
	assert.Greater(t, forgeErr.Location().Line, 0)
}

func TestExtractIsIdempotent(t *testing.T) {
	source := `
def a(x, y=1):
    pass

class C:
    def m(self):
        pass
`

	analyzer := NewAnalyzer()
	first, err := analyzer.ExtractFromSource("sample.py", source)
	require.NoError(t, err)
	second, err := analyzer.ExtractFromSource("sample.py", source)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSkipDirective(t *testing.T) {
	source := `
# forge::skip
def helper():
    pass

def kept():
    pass
`

	analyzer := NewAnalyzer()
	descriptors, err := analyzer.ExtractFromSource("sample.py", source)
	require.NoError(t, err)
	require.Len(t, descriptors, 2)
	assert.True(t, descriptors[0].Skip)
	assert.False(t, descriptors[1].Skip)
}

func TestNameDirective(t *testing.T) {
	source := `
# forge::name legacy_loader
def load(path):
    pass
`

	analyzer := NewAnalyzer()
	descriptors, err := analyzer.ExtractFromSource("sample.py", source)
	require.NoError(t, err)
	require.Len(t, descriptors, 1)
	assert.Equal(t, "legacy_loader", descriptors[0].NameOverride)
}

func TestDirectiveAboveDecorators(t *testing.T) {
	source := `
# forge::skip
@staticmethod
def helper():
    pass
`

	analyzer := NewAnalyzer()
	descriptors, err := analyzer.ExtractFromSource("sample.py", source)
	require.NoError(t, err)
	require.Len(t, descriptors, 1)
	assert.True(t, descriptors[0].Skip)
}

func TestDirectiveRequiresAdjacency(t *testing.T) {
	source := `
# forge::skip

def kept():
    pass
`

	analyzer := NewAnalyzer()
	descriptors, err := analyzer.ExtractFromSource("sample.py", source)
	require.NoError(t, err)
	require.Len(t, descriptors, 1)
	assert.False(t, descriptors[0].Skip)
}

func TestDirectiveInsideClass(t *testing.T) {
	source := `
class Worker:
    # forge::skip
    def internal(self):
        pass

    def run(self):
        pass
`

	analyzer := NewAnalyzer()
	descriptors, err := analyzer.ExtractFromSource("sample.py", source)
	require.NoError(t, err)
	require.Len(t, descriptors, 2)
	assert.True(t, descriptors[0].Skip)
	assert.False(t, descriptors[1].Skip)
}

func TestDirectiveOnFirstMethodOfClass(t *testing.T) {
	t.Run("plain method", func(t *testing.T) {
		source := `
class Worker:
    # forge::skip
    def setup(self):
        pass
`

		analyzer := NewAnalyzer()
		descriptors, err := analyzer.ExtractFromSource("sample.py", source)
		require.NoError(t, err)
		require.Len(t, descriptors, 1)
		assert.True(t, descriptors[0].Skip)
	})

	t.Run("decorated method", func(t *testing.T) {
		source := `
class Worker:
    # forge::name boot
    @staticmethod
    def setup():
        pass
`

		analyzer := NewAnalyzer()
		descriptors, err := analyzer.ExtractFromSource("sample.py", source)
		require.NoError(t, err)
		require.Len(t, descriptors, 1)
		assert.Equal(t, "boot", descriptors[0].NameOverride)
	})
}

func TestMalformedDirectiveFails(t *testing.T) {
	source := `
# forge::rename loader
def load():
    pass
`

	analyzer := NewAnalyzer()
	_, err := analyzer.ExtractFromSource("sample.py", source)
	require.Error(t, err)
	assert.Equal(t, errors.DirectiveErrorCode, errors.CodeOf(err))
}

func TestExtractFunctionsFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "module.py")
	require.NoError(t, os.WriteFile(path, []byte("def ok():\n    pass\n"), 0644))

	analyzer := NewAnalyzer()
	descriptors, err := analyzer.ExtractFunctions(path)
	require.NoError(t, err)
	require.Len(t, descriptors, 1)
	assert.Equal(t, "ok", descriptors[0].Name)
}

func TestExtractFunctionsMissingFile(t *testing.T) {
	analyzer := NewAnalyzer()
	_, err := analyzer.ExtractFunctions(filepath.Join(t.TempDir(), "missing.py"))
	require.Error(t, err)
	assert.Equal(t, errors.IOErrorCode, errors.CodeOf(err))
}
