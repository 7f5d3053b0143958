package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_LiteralOnly(t *testing.T) {
	source := `
const label = t(variable);
const greeting = t("Hello");
`
	found, ok := Extract("t", []byte(source), "Greeting.js")

	require.True(t, ok)
	assert.Equal(t, []string{"Hello"}, found)
}

func TestExtract_CallShapes(t *testing.T) {
	source := `
t("A");
obj.t("A");
other.notT("B");
`
	found, ok := Extract("t", []byte(source), "shapes.js")

	require.True(t, ok)
	assert.Equal(t, []string{"A", "A"}, found)
}

func TestExtract_OptionalChainingCall(t *testing.T) {
	found, ok := Extract("t", []byte(`props.i18n?.t("Optional");`), "optional.js")

	require.True(t, ok)
	assert.Equal(t, []string{"Optional"}, found)
}

func TestExtract_NestedCallsPreOrder(t *testing.T) {
	source := `t("outer", { count: t("inner") }); i18n.t('last');`

	found, ok := Extract("t", []byte(source), "nested.js")

	require.True(t, ok)
	assert.Equal(t, []string{"outer", "inner", "last"}, found)
}

func TestExtract_SkipsTemplatesAndComputedAccess(t *testing.T) {
	source := "t(`template`);\nobj['t']('computed');\nt('a' + b);\nt();\n"

	found, ok := Extract("t", []byte(source), "skip.js")

	require.True(t, ok)
	assert.Empty(t, found)
	assert.NotNil(t, found)
}

func TestExtract_LeadingCommentIsNotAnArgument(t *testing.T) {
	found, ok := Extract("t", []byte(`t(/* screen title */ "Settings");`), "comment.js")

	require.True(t, ok)
	assert.Equal(t, []string{"Settings"}, found)
}

func TestExtract_DecodesEscapes(t *testing.T) {
	source := `t("Don\'t \"panic\"\n"); t('café'); t("\u{1F600}"); t('\x41');`

	found, ok := Extract("t", []byte(source), "escapes.js")

	require.True(t, ok)
	assert.Equal(t, []string{"Don't \"panic\"\n", "café", "😀", "A"}, found)
}

func TestExtract_JSX(t *testing.T) {
	source := `
import React from 'react';

export default function Banner({ i18n }) {
	return <Text accessibilityLabel={i18n.getString("Close")}>{getString('Welcome')}</Text>;
}
`
	found, ok := Extract("getString", []byte(source), "Banner.ios.js")

	require.True(t, ok)
	assert.Equal(t, []string{"Close", "Welcome"}, found)
}

func TestExtract_TypeScript(t *testing.T) {
	source := `
enum Mode { Light, Dark }
function title(mode: Mode): string {
	return t<string>("Theme");
}
`
	found, ok := Extract("t", []byte(source), "theme.ts")

	require.True(t, ok)
	assert.Equal(t, []string{"Theme"}, found)
}

func TestExtract_TSX(t *testing.T) {
	source := `
type Props = { name: string };
export const Hello = ({ name }: Props) => <span>{t("Hi")}</span>;
`
	found, ok := Extract("t", []byte(source), "Hello.web.tsx")

	require.True(t, ok)
	assert.Equal(t, []string{"Hi"}, found)
}

func TestExtract_TypeAnnotationsInJSFile(t *testing.T) {
	source := `
function label(count: number): string {
	return t("Items");
}
`
	found, ok := Extract("t", []byte(source), "annotated.js")

	require.True(t, ok)
	assert.Equal(t, []string{"Items"}, found)
}

func TestExtract_Decorators(t *testing.T) {
	source := `
@observer
class Screen extends React.Component {
	render() { return t("Decorated"); }
}
`
	found, ok := Extract("t", []byte(source), "Screen.js")

	require.True(t, ok)
	assert.Equal(t, []string{"Decorated"}, found)
}

func TestExtract_ParseFailure(t *testing.T) {
	found, ok := Extract("t", []byte(`t("ok"); function (`), "broken.js")

	assert.False(t, ok)
	assert.Nil(t, found)
}

func TestCallee_Matches(t *testing.T) {
	assert.True(t, PlainName{Name: "t"}.Matches("t"))
	assert.False(t, PlainName{Name: "tt"}.Matches("t"))
	assert.True(t, PropertyAccess{Object: "i18n", Property: "t"}.Matches("t"))
	assert.False(t, PropertyAccess{Object: "t", Property: "notT"}.Matches("t"))
}

func TestUnquoteStringLiteral(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`"plain"`, "plain"},
		{`'single'`, "single"},
		{`"tab\there"`, "tab\there"},
		{`"back\\slash"`, `back\slash`},
		{`"😀"`, "😀"},
		{"\"line\\\ncontinued\"", "linecontinued"},
		{`"\q"`, "q"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, unquoteStringLiteral(tt.raw))
		})
	}
}
