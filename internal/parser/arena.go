package parser

import (
	"github.com/palladium-lang/palladium/internal/arena"
	"github.com/palladium-lang/palladium/internal/ast"
	"github.com/palladium-lang/palladium/internal/lexer"
)

// nodeArenas backs the parser's most frequently allocated leaf and binary
// expression nodes with the bump allocator spec.md §3/§5 call for ("a
// small arena allocator for tree nodes" whose "lifetime equals the
// compilation's"), instead of one heap allocation per node. Less common
// node kinds (struct/enum declarations, match arms, ...) are still built
// with their plain ast.New* constructors: they are allocated once per
// occurrence in source, not once per sub-expression, so the allocator
// traffic they'd save is marginal next to the bookkeeping of giving every
// node kind its own arena.
type nodeArenas struct {
	ints  *arena.Arena[ast.IntLit]
	strs  *arena.Arena[ast.StringLit]
	bools *arena.Arena[ast.BoolLit]
	paths *arena.Arena[ast.PathExpr]
	bins  *arena.Arena[ast.BinaryExpr]
}

func newNodeArenas() *nodeArenas {
	return &nodeArenas{
		ints:  arena.New[ast.IntLit](0),
		strs:  arena.New[ast.StringLit](0),
		bools: arena.New[ast.BoolLit](0),
		paths: arena.New[ast.PathExpr](0),
		bins:  arena.New[ast.BinaryExpr](0),
	}
}

func (a *nodeArenas) intLit(value int64, sp lexer.Span) *ast.IntLit {
	n := a.ints.Alloc()
	n.Value = value
	n.SetSpan(sp)
	return n
}

func (a *nodeArenas) stringLit(value string, sp lexer.Span) *ast.StringLit {
	n := a.strs.Alloc()
	n.Value = value
	n.SetSpan(sp)
	return n
}

func (a *nodeArenas) boolLit(value bool, sp lexer.Span) *ast.BoolLit {
	n := a.bools.Alloc()
	n.Value = value
	n.SetSpan(sp)
	return n
}

func (a *nodeArenas) pathExpr(segments []string, sp lexer.Span) *ast.PathExpr {
	n := a.paths.Alloc()
	n.Segments = segments
	n.SetSpan(sp)
	return n
}

func (a *nodeArenas) binaryExpr(op ast.BinaryOp, left, right ast.Expr, sp lexer.Span) *ast.BinaryExpr {
	n := a.bins.Alloc()
	n.Op = op
	n.Left = left
	n.Right = right
	n.SetSpan(sp)
	return n
}
