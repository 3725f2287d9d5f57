package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParameterKindString(t *testing.T) {
	assert.Equal(t, "positional-or-keyword", ParameterKindPositionalOrKeyword.String())
	assert.Equal(t, "positional-only", ParameterKindPositionalOnly.String())
	assert.Equal(t, "keyword-only", ParameterKindKeywordOnly.String())
	assert.Equal(t, "var-positional", ParameterKindVarPositional.String())
	assert.Equal(t, "var-keyword", ParameterKindVarKeyword.String())
}

func TestParameterKindIsVariadic(t *testing.T) {
	assert.True(t, ParameterKindVarPositional.IsVariadic())
	assert.True(t, ParameterKindVarKeyword.IsVariadic())
	assert.False(t, ParameterKindPositionalOrKeyword.IsVariadic())
	assert.False(t, ParameterKindKeywordOnly.IsVariadic())
	assert.False(t, ParameterKindPositionalOnly.IsVariadic())
}

func TestQualifiedName(t *testing.T) {
	function := CallableDescriptor{Name: "load"}
	assert.Equal(t, "load", function.QualifiedName())

	method := CallableDescriptor{Name: "run", ClassName: "Worker"}
	assert.Equal(t, "Worker.run", method.QualifiedName())
}

func TestRequiredParameters(t *testing.T) {
	t.Run("excludes defaults and variadics", func(t *testing.T) {
		desc := CallableDescriptor{
			Name: "f",
			Parameters: []ParameterDescriptor{
				{Name: "a", Kind: ParameterKindPositionalOrKeyword},
				{Name: "b", Kind: ParameterKindPositionalOrKeyword, Default: "1", HasDefault: true},
				{Name: "args", Kind: ParameterKindVarPositional},
				{Name: "c", Kind: ParameterKindKeywordOnly},
				{Name: "kw", Kind: ParameterKindVarKeyword},
			},
		}

		required := desc.RequiredParameters()
		require.Len(t, required, 2)
		assert.Equal(t, "a", required[0].Name)
		assert.Equal(t, "c", required[1].Name)
	})

	t.Run("excludes the method receiver", func(t *testing.T) {
		desc := CallableDescriptor{
			Name:      "run",
			ClassName: "Worker",
			IsMethod:  true,
			Parameters: []ParameterDescriptor{
				{Name: "self", Kind: ParameterKindPositionalOrKeyword},
				{Name: "task", Kind: ParameterKindPositionalOrKeyword},
			},
		}

		required := desc.RequiredParameters()
		require.Len(t, required, 1)
		assert.Equal(t, "task", required[0].Name)
	})
}

func TestDefaultedParameters(t *testing.T) {
	desc := CallableDescriptor{
		Name: "f",
		Parameters: []ParameterDescriptor{
			{Name: "a", Kind: ParameterKindPositionalOrKeyword},
			{Name: "b", Kind: ParameterKindPositionalOrKeyword, Default: "1", HasDefault: true},
			{Name: "c", Kind: ParameterKindKeywordOnly, Default: "None", HasDefault: true},
		},
	}

	defaulted := desc.DefaultedParameters()
	require.Len(t, defaulted, 2)
	assert.Equal(t, "b", defaulted[0].Name)
	assert.Equal(t, "c", defaulted[1].Name)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		desc    CallableDescriptor
		wantErr string
	}{
		{
			name: "valid descriptor",
			desc: CallableDescriptor{
				Name: "process",
				Parameters: []ParameterDescriptor{
					{Name: "data", Kind: ParameterKindPositionalOrKeyword},
					{Name: "args", Kind: ParameterKindVarPositional},
					{Name: "kwargs", Kind: ParameterKindVarKeyword},
				},
			},
		},
		{
			name:    "invalid callable name",
			desc:    CallableDescriptor{Name: "1bad"},
			wantErr: "not a valid identifier",
		},
		{
			name: "invalid parameter name",
			desc: CallableDescriptor{
				Name:       "f",
				Parameters: []ParameterDescriptor{{Name: "a-b", Kind: ParameterKindPositionalOrKeyword}},
			},
			wantErr: "not a valid identifier",
		},
		{
			name: "duplicate var-positional",
			desc: CallableDescriptor{
				Name: "f",
				Parameters: []ParameterDescriptor{
					{Name: "a", Kind: ParameterKindVarPositional},
					{Name: "b", Kind: ParameterKindVarPositional},
				},
			},
			wantErr: "var-positional",
		},
		{
			name: "variadic with default",
			desc: CallableDescriptor{
				Name: "f",
				Parameters: []ParameterDescriptor{
					{Name: "kw", Kind: ParameterKindVarKeyword, Default: "{}", HasDefault: true},
				},
			},
			wantErr: "cannot have a default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.desc.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
