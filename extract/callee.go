package extract

import sitter "github.com/smacker/go-tree-sitter"

// Callee is the function position of a call expression. It is one of
// PlainName or PropertyAccess; other callee shapes are not modeled.
type Callee interface {
	// Matches reports whether the call invokes the named extractor.
	Matches(extractorName string) bool
}

// PlainName is a callee written as a bare identifier: t("…").
type PlainName struct {
	Name string
}

func (c PlainName) Matches(extractorName string) bool {
	return c.Name == extractorName
}

// PropertyAccess is a callee written as a member access: i18n.t("…").
type PropertyAccess struct {
	Object   string
	Property string
}

func (c PropertyAccess) Matches(extractorName string) bool {
	return c.Property == extractorName
}

// calleeOf classifies the function node of a call expression. Computed
// access (obj["t"]) and every other expression shape yield false.
func calleeOf(function *sitter.Node, sourceCode []byte) (Callee, bool) {
	if function == nil {
		return nil, false
	}

	switch function.Type() {
	case "identifier":
		return PlainName{Name: function.Content(sourceCode)}, true
	case "member_expression":
		property := function.ChildByFieldName("property")
		if property == nil {
			return nil, false
		}
		var object string
		if obj := function.ChildByFieldName("object"); obj != nil {
			object = obj.Content(sourceCode)
		}
		return PropertyAccess{Object: object, Property: property.Content(sourceCode)}, true
	default:
		return nil, false
	}
}
