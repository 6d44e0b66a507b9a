package builder

import (
	"testing"

	"github.com/pthm/surrealkit/pkg/surql"
)

func gtN() surql.Condition {
	return surql.Cmp("n", surql.OpMoreThan, "$n")
}

// BenchmarkSelect_PrebuiltExpression renders a SELECT whose condition tree
// is assembled by hand.
func BenchmarkSelect_PrebuiltExpression(b *testing.B) {
	var expr surql.Value = gtN().Value()
	for range 4 {
		expr = surql.Binary{L: gtN().Value(), Op: surql.OpAnd, R: expr}
	}
	b.ReportAllocs()
	b.ResetTimer()
	for b.Loop() {
		_ = Select().What("test").Field("*").Where(expr).SQL()
	}
}

// BenchmarkSelect_TokenStream renders the same SELECT from a flat token
// stream folded by BuildCond.
func BenchmarkSelect_TokenStream(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		_ = Select().What("test").Field("*").Where(
			gtN(), surql.Op(surql.OpAnd),
			gtN(), surql.Op(surql.OpAnd),
			gtN(), surql.Op(surql.OpAnd),
			gtN(), surql.Op(surql.OpAnd),
			gtN(),
		).SQL()
	}
}

// BenchmarkSelect_Conds renders the same SELECT with operators parsed from
// their tokens.
func BenchmarkSelect_Conds(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		_ = Select().What("test").Field("*").Where(
			surql.Cmp("n", surql.OpMoreThan, "$n"), surql.MustOperator("AND"),
			surql.Cmp("n", surql.OpMoreThan, "$n"), surql.MustOperator("&&"),
			surql.Cmp("n", surql.OpMoreThan, "$n"), surql.MustOperator("and"),
			surql.Cmp("n", surql.OpMoreThan, "$n"), surql.MustOperator("And"),
			surql.Cmp("n", surql.OpMoreThan, "$n"),
		).SQL()
	}
}
