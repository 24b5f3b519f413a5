package codegen

import "github.com/jialihong/rectangle/internal/ast"

func (g *gen) emitBlock(b *ast.CompoundStmt, ctx exprCtx) error {
	for _, item := range b.Items {
		if err := g.emitStmt(item, ctx); err != nil {
			return err
		}
	}
	return nil
}

func (g *gen) emitStmt(n ast.Node, ctx exprCtx) error {
	switch s := n.(type) {
	case *ast.DeclStmt:
		if s.Var.Init != nil {
			if err := g.emitExpr(s.Var.Init, ctx); err != nil {
				return err
			}
			g.emit1("lstore", s.Var.Local)
		}
		return nil

	case *ast.IfStmt:
		lfalse := g.newLabel()
		if err := g.emitExpr(s.Cond, ctx); err != nil {
			return err
		}
		g.emit1s("brf", lfalse)
		if err := g.emitBlock(s.Then, ctx); err != nil {
			return err
		}
		if s.Else == nil {
			g.label(lfalse)
			return nil
		}
		lend := g.newLabel()
		g.emit1s("br", lend)
		g.label(lfalse)
		if err := g.emitBlock(s.Else, ctx); err != nil {
			return err
		}
		g.label(lend)
		return nil

	case *ast.WhileStmt:
		lcond := g.newLabel()
		lend := g.newLabel()
		g.label(lcond)
		if err := g.emitExpr(s.Cond, ctx); err != nil {
			return err
		}
		g.emit1s("brf", lend)
		g.loops = append(g.loops, loopLabels{cont: lcond, end: lend})
		err := g.emitBlock(s.Body, ctx)
		g.loops = g.loops[:len(g.loops)-1]
		if err != nil {
			return err
		}
		g.emit1s("br", lcond)
		g.label(lend)
		return nil

	case *ast.BreakStmt:
		top := g.loops[len(g.loops)-1]
		g.emit1s("br", top.end)
		return nil

	case *ast.ContinueStmt:
		top := g.loops[len(g.loops)-1]
		g.emit1s("br", top.cont)
		return nil

	case *ast.ReturnStmt:
		if s.Value != nil {
			if err := g.emitExpr(s.Value, ctx); err != nil {
				return err
			}
		} else {
			g.emit1("iconst", 0)
		}
		g.emit0("ret")
		return nil

	case *ast.ExprStmt:
		if _, isAssign := s.X.(*ast.AssignExpr); isAssign {
			return g.emitExpr(s.X, ctx)
		}
		if err := g.emitExpr(s.X, ctx); err != nil {
			return err
		}
		g.emit0("pop")
		return nil

	default:
		return internalErr(n, "codegen: unhandled statement %T", n)
	}
}
