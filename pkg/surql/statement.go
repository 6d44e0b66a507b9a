package surql

import (
	"time"
)

// SelectStatement represents a SELECT query.
type SelectStatement struct {
	Expr        Fields
	Omit        []Idiom
	Only        bool
	What        []Value
	With        *With
	Cond        *Cond
	Split       []Idiom
	Group       []Idiom
	GroupAll    bool
	Order       []Order
	Limit       Value
	Start       Value
	Fetch       []Idiom
	Version     Value
	Timeout     time.Duration
	Parallel    bool
	Tempfiles   bool
	Explain     bool
	ExplainFull bool
}

func (SelectStatement) statement() {}

// SQL renders the SELECT statement.
func (s SelectStatement) SQL() string {
	return Clauses(
		"SELECT",
		s.Expr.SQL(),
		Optf(len(s.Omit) > 0, "OMIT %s", joinIdioms(s.Omit)),
		"FROM",
		Optf(s.Only, "ONLY"),
		joinValues(s.What, ", "),
		withSQL(s.With),
		condSQL(s.Cond),
		Optf(len(s.Split) > 0, "SPLIT ON %s", joinIdioms(s.Split)),
		s.groupSQL(),
		orderSQL(s.Order),
		optValue("LIMIT", s.Limit),
		optValue("START", s.Start),
		Optf(len(s.Fetch) > 0, "FETCH %s", joinIdioms(s.Fetch)),
		optValue("VERSION", s.Version),
		timeoutSQL(s.Timeout),
		Optf(s.Parallel, "PARALLEL"),
		Optf(s.Tempfiles, "TEMPFILES"),
		s.explainSQL(),
	)
}

func (s SelectStatement) groupSQL() string {
	if s.GroupAll {
		return "GROUP ALL"
	}
	if len(s.Group) == 0 {
		return ""
	}
	return "GROUP BY " + joinIdioms(s.Group)
}

func (s SelectStatement) explainSQL() string {
	switch {
	case s.ExplainFull:
		return "EXPLAIN FULL"
	case s.Explain:
		return "EXPLAIN"
	}
	return ""
}

// CreateStatement represents a CREATE query.
type CreateStatement struct {
	Only     bool
	What     []Value
	Data     *Data
	Output   *Output
	Timeout  time.Duration
	Parallel bool
}

func (CreateStatement) statement() {}

// SQL renders the CREATE statement.
func (s CreateStatement) SQL() string {
	return Clauses(
		"CREATE",
		Optf(s.Only, "ONLY"),
		joinValues(s.What, ", "),
		dataSQL(s.Data),
		outputSQL(s.Output),
		timeoutSQL(s.Timeout),
		Optf(s.Parallel, "PARALLEL"),
	)
}

// UpdateStatement represents an UPDATE query.
type UpdateStatement struct {
	Only     bool
	What     []Value
	Data     *Data
	Cond     *Cond
	Output   *Output
	Timeout  time.Duration
	Parallel bool
}

func (UpdateStatement) statement() {}

// SQL renders the UPDATE statement.
func (s UpdateStatement) SQL() string {
	return Clauses(
		"UPDATE",
		Optf(s.Only, "ONLY"),
		joinValues(s.What, ", "),
		dataSQL(s.Data),
		condSQL(s.Cond),
		outputSQL(s.Output),
		timeoutSQL(s.Timeout),
		Optf(s.Parallel, "PARALLEL"),
	)
}

// RelateStatement represents a RELATE query, from->kind->with.
type RelateStatement struct {
	Only     bool
	Kind     Value
	From     Value
	With     Value
	Uniq     bool
	Data     *Data
	Output   *Output
	Timeout  time.Duration
	Parallel bool
}

func (RelateStatement) statement() {}

// SQL renders the RELATE statement.
func (s RelateStatement) SQL() string {
	return Clauses(
		"RELATE",
		Optf(s.Only, "ONLY"),
		orNull(s.From).SQL()+"->"+orNull(s.Kind).SQL()+"->"+orNull(s.With).SQL(),
		Optf(s.Uniq, "UNIQUE"),
		dataSQL(s.Data),
		outputSQL(s.Output),
		timeoutSQL(s.Timeout),
		Optf(s.Parallel, "PARALLEL"),
	)
}

// DeleteStatement represents a DELETE query.
type DeleteStatement struct {
	Only     bool
	What     []Value
	Cond     *Cond
	Output   *Output
	Timeout  time.Duration
	Parallel bool
}

func (DeleteStatement) statement() {}

// SQL renders the DELETE statement.
func (s DeleteStatement) SQL() string {
	return Clauses(
		"DELETE",
		Optf(s.Only, "ONLY"),
		joinValues(s.What, ", "),
		condSQL(s.Cond),
		outputSQL(s.Output),
		timeoutSQL(s.Timeout),
		Optf(s.Parallel, "PARALLEL"),
	)
}

func withSQL(w *With) string {
	if w == nil {
		return ""
	}
	return w.SQL()
}

func condSQL(c *Cond) string {
	if c == nil || c.Value == nil {
		return ""
	}
	return "WHERE " + c.SQL()
}

func orderSQL(orders []Order) string {
	if len(orders) == 0 {
		return ""
	}
	parts := make([]string, len(orders))
	for i, o := range orders {
		parts[i] = o.SQL()
	}
	return "ORDER BY " + joinStrings(parts)
}

func dataSQL(d *Data) string {
	if d == nil {
		return ""
	}
	return d.SQL()
}

func outputSQL(o *Output) string {
	if o == nil {
		return ""
	}
	return o.SQL()
}

func timeoutSQL(d time.Duration) string {
	if d <= 0 {
		return ""
	}
	return "TIMEOUT " + Duration(d).SQL()
}
