package schema_test

import (
	"testing"

	"github.com/0xalexb/bluecommit/config/schema"
	"github.com/0xalexb/bluecommit/config/tree"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema(t *testing.T) *schema.Schema {
	t.Helper()

	s, err := schema.New(
		schema.Field{Path: "github.commits.postToBluesky", Kind: tree.KindBool, Default: tree.Bool(true)},
		schema.Field{Path: "stats.enable", Kind: tree.KindBool, Default: tree.Bool(true)},
		schema.Field{Path: "stats.window", Kind: tree.KindNumber, Default: tree.Number(7)},
	)
	require.NoError(t, err)

	return s
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	s := testSchema(t)

	assert.Equal(t, tree.Map{
		"github": tree.Map{"commits": tree.Map{"postToBluesky": tree.Bool(true)}},
		"stats":  tree.Map{"enable": tree.Bool(true), "window": tree.Number(7)},
	}, s.Defaults())
}

func TestSchema_Defaults_ReturnsFreshTree(t *testing.T) {
	t.Parallel()

	s := testSchema(t)

	first := s.Defaults()
	first["stats"].(tree.Map)["enable"] = tree.Bool(false)
	delete(first, "github")

	second := s.Defaults()
	assert.Equal(t, tree.Bool(true), second["stats"].(tree.Map)["enable"])
	assert.Contains(t, second, "github")
}

func TestNew_Invalid(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		fields []schema.Field
		msg    string
	}{
		{
			name:   "empty path",
			fields: []schema.Field{{Path: "", Kind: tree.KindBool, Default: tree.Bool(true)}},
			msg:    "empty field path",
		},
		{
			name:   "empty segment",
			fields: []schema.Field{{Path: "a..b", Kind: tree.KindBool, Default: tree.Bool(true)}},
			msg:    "empty segment",
		},
		{
			name:   "map kind",
			fields: []schema.Field{{Path: "a", Kind: tree.KindMap, Default: tree.Map{}}},
			msg:    "non-leaf kind",
		},
		{
			name:   "default kind mismatch",
			fields: []schema.Field{{Path: "a", Kind: tree.KindBool, Default: tree.String("yes")}},
			msg:    "default of",
		},
		{
			name:   "nil default",
			fields: []schema.Field{{Path: "a", Kind: tree.KindBool, Default: nil}},
			msg:    "default of",
		},
		{
			name: "duplicate",
			fields: []schema.Field{
				{Path: "a", Kind: tree.KindBool, Default: tree.Bool(true)},
				{Path: "a", Kind: tree.KindBool, Default: tree.Bool(false)},
			},
			msg: "duplicate field",
		},
		{
			name: "nested fields",
			fields: []schema.Field{
				{Path: "a.b", Kind: tree.KindBool, Default: tree.Bool(true)},
				{Path: "a", Kind: tree.KindBool, Default: tree.Bool(false)},
			},
			msg: "overlap",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			s, err := schema.New(testCase.fields...)

			require.ErrorIs(t, err, schema.ErrInvalidSchema)
			assert.Contains(t, err.Error(), testCase.msg)
			assert.Nil(t, s)
		})
	}
}

func TestMustNew_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		schema.MustNew(schema.Field{Path: "a", Kind: tree.KindBool, Default: tree.Number(1)})
	})
}

func TestSchema_FieldsIsACopy(t *testing.T) {
	t.Parallel()

	s := testSchema(t)

	fields := s.Fields()
	fields[0].Path = "changed"

	assert.Equal(t, "github.commits.postToBluesky", s.Fields()[0].Path)
	assert.True(t, s.Declares("stats.enable"))
	assert.False(t, s.Declares("stats"))
}

func TestParsePolicy(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input   string
		want    schema.Policy
		wantErr bool
	}{
		{input: "", want: schema.PolicyPartial},
		{input: "partial", want: schema.PolicyPartial},
		{input: " Strict ", want: schema.PolicyStrict},
		{input: "lenient", want: schema.PolicyPartial, wantErr: true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.input, func(t *testing.T) {
			t.Parallel()

			got, err := schema.ParsePolicy(testCase.input)
			if testCase.wantErr {
				require.ErrorIs(t, err, schema.ErrUnknownPolicy)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, testCase.want, got)
		})
	}

	assert.Equal(t, "strict", schema.PolicyStrict.String())
	assert.Equal(t, "partial", schema.PolicyPartial.String())
}
