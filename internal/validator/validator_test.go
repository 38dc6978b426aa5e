package validator

import (
	"errors"
	"testing"

	"rnconfig/internal/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate_Nil(t *testing.T) {
	assert.Nil(t, Translate(nil))
}

func TestTranslate_JoinsMessagesInOrder(t *testing.T) {
	verr := &schema.ValidationError{Details: []schema.Detail{
		{Path: []string{"commands"}, Type: schema.TypeArrayBase, Value: "x"},
		{Path: []string{"name"}, Type: schema.TypeRequired, Message: `"name" is required`},
	}}

	cerr := Translate(verr)

	require.NotNil(t, cerr)
	assert.Equal(t, []string{
		"Option commands must be a array, instead got string",
		`"name" is required`,
	}, cerr.Messages)
	assert.Equal(t, `Option commands must be a array, instead got string, "name" is required`, cerr.Error())
}

func TestTranslate_UnwrapsToViolations(t *testing.T) {
	verr := &schema.ValidationError{Details: []schema.Detail{{Path: []string{"x"}, Type: schema.TypeRequired, Message: "m"}}}

	var err error = Translate(verr)

	var target *schema.ValidationError
	require.True(t, errors.As(err, &target))
	assert.Same(t, verr, target)

	var cerr *ConfigValidationError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, verr.Details, cerr.Details())
}

func TestTranslate_FromRealValidation(t *testing.T) {
	s := schema.Object().Keys(schema.Key("commands", schema.Array()))

	res := s.Validate(map[string]any{"commands": "not-an-array", "extra": 1}, schema.Options{})

	cerr := Translate(res.Err)
	require.NotNil(t, cerr)
	require.Len(t, cerr.Messages, 2)
	assert.Contains(t, cerr.Messages[0], "commands")
	assert.Contains(t, cerr.Messages[1], "Unknown option extra")
}
