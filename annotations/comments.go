package annotations

import "go/ast"

// SpecComments returns the comment groups documenting one spec of a
// declaration. The declaration doc only belongs to the spec when the
// declaration is not parenthesized.
func SpecComments(decl *ast.GenDecl, doc, comment *ast.CommentGroup) []*ast.CommentGroup {
	var groups []*ast.CommentGroup
	if !decl.Lparen.IsValid() && decl.Doc != nil {
		groups = append(groups, decl.Doc)
	}
	if doc != nil {
		groups = append(groups, doc)
	}
	if comment != nil {
		groups = append(groups, comment)
	}
	return groups
}
