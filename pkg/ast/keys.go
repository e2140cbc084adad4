package ast

import (
	"maps"
	"slices"
)

// VisitorKeys maps a node type to the ordered names of its child fields.
type VisitorKeys map[string][]string

// ChildKeys returns the child field names of n in traversal order.
// Node types missing from the mapping fall back to their field names in
// sorted order.
func (k VisitorKeys) ChildKeys(n *Node) []string {
	if keys, ok := k[n.Type]; ok {
		return keys
	}
	return slices.Sorted(maps.Keys(n.Fields))
}

// Merge returns a copy of k with the entries of overrides applied on top.
func (k VisitorKeys) Merge(overrides VisitorKeys) VisitorKeys {
	merged := make(VisitorKeys, len(k)+len(overrides))
	for nodeType, keys := range k {
		merged[nodeType] = slices.Clone(keys)
	}
	for nodeType, keys := range overrides {
		merged[nodeType] = slices.Clone(keys)
	}
	return merged
}

// DefaultVisitorKeys returns a fresh copy of the standard ESTree and JSX
// child-key mapping.
func DefaultVisitorKeys() VisitorKeys {
	return VisitorKeys{}.Merge(defaultVisitorKeys)
}

//nolint:gochecknoglobals // Read-only lookup table, copied before use.
var defaultVisitorKeys = VisitorKeys{
	"ArrayExpression":          {"elements"},
	"ArrayPattern":             {"elements"},
	"ArrowFunctionExpression":  {"params", "body"},
	"AssignmentExpression":     {"left", "right"},
	"AssignmentPattern":        {"left", "right"},
	"AwaitExpression":          {"argument"},
	"BinaryExpression":         {"left", "right"},
	"BlockStatement":           {"body"},
	"BreakStatement":           {"label"},
	"CallExpression":           {"callee", "arguments"},
	"CatchClause":              {"param", "body"},
	"ChainExpression":          {"expression"},
	"ClassBody":                {"body"},
	"ClassDeclaration":         {"id", "superClass", "body"},
	"ClassExpression":          {"id", "superClass", "body"},
	"ConditionalExpression":    {"test", "consequent", "alternate"},
	"ContinueStatement":        {"label"},
	"DebuggerStatement":        {},
	"DoWhileStatement":         {"body", "test"},
	"EmptyStatement":           {},
	"ExportAllDeclaration":     {"exported", "source", "attributes"},
	"ExportDefaultDeclaration": {"declaration"},
	"ExportNamedDeclaration":   {"declaration", "specifiers", "source", "attributes"},
	"ExportSpecifier":          {"exported", "local"},
	"ExpressionStatement":      {"expression"},
	"ForInStatement":           {"left", "right", "body"},
	"ForOfStatement":           {"left", "right", "body"},
	"ForStatement":             {"init", "test", "update", "body"},
	"FunctionDeclaration":      {"id", "params", "body"},
	"FunctionExpression":       {"id", "params", "body"},
	"Identifier":               {},
	"IfStatement":              {"test", "consequent", "alternate"},
	"ImportAttribute":          {"key", "value"},
	"ImportDeclaration":        {"specifiers", "source", "attributes"},
	"ImportDefaultSpecifier":   {"local"},
	"ImportExpression":         {"source", "options"},
	"ImportNamespaceSpecifier": {"local"},
	"ImportSpecifier":          {"imported", "local"},
	"JSXAttribute":             {"name", "value"},
	"JSXClosingElement":        {"name"},
	"JSXClosingFragment":       {},
	"JSXElement":               {"openingElement", "children", "closingElement"},
	"JSXEmptyExpression":       {},
	"JSXExpressionContainer":   {"expression"},
	"JSXFragment":              {"openingFragment", "children", "closingFragment"},
	"JSXIdentifier":            {},
	"JSXMemberExpression":      {"object", "property"},
	"JSXNamespacedName":        {"namespace", "name"},
	"JSXOpeningElement":        {"name", "attributes"},
	"JSXOpeningFragment":       {},
	"JSXSpreadAttribute":       {"argument"},
	"JSXSpreadChild":           {"expression"},
	"JSXText":                  {},
	"LabeledStatement":         {"label", "body"},
	"Literal":                  {},
	"LogicalExpression":        {"left", "right"},
	"MemberExpression":         {"object", "property"},
	"MetaProperty":             {"meta", "property"},
	"MethodDefinition":         {"key", "value"},
	"NewExpression":            {"callee", "arguments"},
	"ObjectExpression":         {"properties"},
	"ObjectPattern":            {"properties"},
	"PrivateIdentifier":        {},
	"Program":                  {"body"},
	"Property":                 {"key", "value"},
	"PropertyDefinition":       {"key", "value"},
	"RestElement":              {"argument"},
	"ReturnStatement":          {"argument"},
	"SequenceExpression":       {"expressions"},
	"SpreadElement":            {"argument"},
	"StaticBlock":              {"body"},
	"Super":                    {},
	"SwitchCase":               {"test", "consequent"},
	"SwitchStatement":          {"discriminant", "cases"},
	"TaggedTemplateExpression": {"tag", "quasi"},
	"TemplateElement":          {},
	"TemplateLiteral":          {"quasis", "expressions"},
	"ThisExpression":           {},
	"ThrowStatement":           {"argument"},
	"TryStatement":             {"block", "handler", "finalizer"},
	"UnaryExpression":          {"argument"},
	"UpdateExpression":         {"argument"},
	"VariableDeclaration":      {"declarations"},
	"VariableDeclarator":       {"id", "init"},
	"WhileStatement":           {"test", "body"},
	"WithStatement":            {"object", "body"},
	"YieldExpression":          {"argument"},
}
