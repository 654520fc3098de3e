package dialect_test

import (
	"testing"

	"github.com/0xalexb/bluecommit/config/dialect"
	"github.com/0xalexb/bluecommit/config/tree"

	"github.com/stretchr/testify/assert"
)

func TestInfer(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		raw  string
		want tree.Value
	}{
		{name: "true", raw: "true", want: tree.Bool(true)},
		{name: "upper TRUE", raw: "TRUE", want: tree.Bool(true)},
		{name: "mixed False", raw: "False", want: tree.Bool(false)},
		{name: "integer", raw: "42", want: tree.Number(42)},
		{name: "float", raw: "3.14", want: tree.Number(3.14)},
		{name: "negative", raw: "-7", want: tree.Number(-7)},
		{name: "exponent", raw: "1e3", want: tree.Number(1000)},
		{name: "number list", raw: "1,2,3", want: tree.List{tree.Number(1), tree.Number(2), tree.Number(3)}},
		{name: "string list", raw: "a,b", want: tree.List{tree.String("a"), tree.String("b")}},
		{
			name: "heterogeneous list with spaces",
			raw:  "true , 2,  x ,'q'",
			want: tree.List{tree.Bool(true), tree.Number(2), tree.String("x"), tree.String("q")},
		},
		{name: "empty list element", raw: "a,,b", want: tree.List{tree.String("a"), tree.String(""), tree.String("b")}},
		{name: "trailing comma", raw: "a,", want: tree.List{tree.String("a"), tree.String("")}},
		{name: "double quoted", raw: `"hello"`, want: tree.String("hello")},
		{name: "single quoted", raw: `'hello'`, want: tree.String("hello")},
		{name: "quotes stripped once", raw: `""x""`, want: tree.String(`"x"`)},
		{name: "mismatched quotes kept", raw: `"hello'`, want: tree.String(`"hello'`)},
		{name: "lone quote kept", raw: `"`, want: tree.String(`"`)},
		{name: "plain string", raw: "hello world", want: tree.String("hello world")},
		{name: "empty", raw: "", want: tree.String("")},
		{name: "NaN is a string", raw: "NaN", want: tree.String("NaN")},
		{name: "Inf is a string", raw: "Inf", want: tree.String("Inf")},
		{name: "value with equals sign", raw: "a=b", want: tree.String("a=b")},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, dialect.Infer(testCase.raw))
		})
	}
}

// Quotes only come off in the last rule, so quoting a literal keeps it a string.
func TestInfer_QuotedLiteralsStayStrings(t *testing.T) {
	t.Parallel()

	assert.Equal(t, tree.String("true"), dialect.Infer(`"true"`))
	assert.Equal(t, tree.String("FALSE"), dialect.Infer(`'FALSE'`))
	assert.Equal(t, tree.String("3"), dialect.Infer(`"3"`))
}

// The comma rule runs before quote stripping, so a quoted list is still split.
func TestInfer_QuotedCommaIsStillAList(t *testing.T) {
	t.Parallel()

	assert.Equal(t, tree.List{tree.String(`"a`), tree.String(`b"`)}, dialect.Infer(`"a,b"`))
}
