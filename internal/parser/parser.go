package parser

import (
	"cmp"
	"context"
	"slices"

	"golang.org/x/sync/errgroup"
)

// Parse returns a descriptor for every CREATE TABLE statement in sql that
// could be parsed, in source order. Statements that fail are omitted; use
// ParseWithDiagnostics to learn which ones and why.
func Parse(sql string) []TableDescriptor {
	return ParseWithDiagnostics(sql).Tables
}

// ParseWithDiagnostics parses sql like Parse and also reports every
// statement that was dropped.
func ParseWithDiagnostics(sql string) Result {
	var res Result
	scanStatements(sql, func(stmt Statement) bool {
		t, err := ParseTable(stmt.Text)
		if err != nil {
			res.Dropped = append(res.Dropped, newDiagnostic(stmt.Text, stmt.Offset, stmt.Line, err))
			return true
		}
		res.Tables = append(res.Tables, t)
		return true
	}, func(d Diagnostic) {
		res.Dropped = append(res.Dropped, d)
	})
	sortDiagnostics(res.Dropped)
	return res
}

// ParseConcurrent parses sql like ParseWithDiagnostics but builds the
// descriptors of individual statements on up to workers goroutines.
// Output order matches source order. The only error returned is the
// context's, when it is cancelled before all statements are built.
func ParseConcurrent(ctx context.Context, sql string, workers int) (Result, error) {
	if workers <= 1 {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		return ParseWithDiagnostics(sql), nil
	}

	var stmts []Statement
	var dropped []Diagnostic
	scanStatements(sql, func(stmt Statement) bool {
		stmts = append(stmts, stmt)
		return ctx.Err() == nil
	}, func(d Diagnostic) {
		dropped = append(dropped, d)
	})

	type built struct {
		table TableDescriptor
		err   error
	}
	out := make([]built, len(stmts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, stmt := range stmts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			t, err := ParseTable(stmt.Text)
			out[i] = built{table: t, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	var res Result
	for i, b := range out {
		if b.err != nil {
			dropped = append(dropped, newDiagnostic(stmts[i].Text, stmts[i].Offset, stmts[i].Line, b.err))
			continue
		}
		res.Tables = append(res.Tables, b.table)
	}
	sortDiagnostics(dropped)
	res.Dropped = dropped
	return res, nil
}

func sortDiagnostics(ds []Diagnostic) {
	slices.SortStableFunc(ds, func(a, b Diagnostic) int {
		return cmp.Compare(a.Offset, b.Offset)
	})
}
