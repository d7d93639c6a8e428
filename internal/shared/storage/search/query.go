package search

// Query is a small recursive boolean expression over match and term clauses.
// Exactly one of the fields is set.
type Query struct {
	Match *MatchClause
	Term  *TermClause
	Bool  *BoolClause
}

// MatchClause is a full-text relevance match on one field.
type MatchClause struct {
	Field string
	Text  string
}

// TermClause is an exact value filter on one field.
type TermClause struct {
	Field string
	Value string
}

// BoolClause combines sub-queries: all of Must, at least one of Should.
type BoolClause struct {
	Must   []Query
	Should []Query
}

// Match builds a full-text match query on field.
func Match(field, text string) Query {
	return Query{Match: &MatchClause{Field: field, Text: text}}
}

// Term builds an exact-value filter on field.
func Term(field, value string) Query {
	return Query{Term: &TermClause{Field: field, Value: value}}
}

// And combines queries so that all must match.
func And(queries ...Query) Query {
	return Query{Bool: &BoolClause{Must: queries}}
}

// Or combines queries so that at least one must match.
func Or(queries ...Query) Query {
	return Query{Bool: &BoolClause{Should: queries}}
}

// DSL renders the query as an Elasticsearch query DSL fragment.
func (q Query) DSL() map[string]any {
	switch {
	case q.Match != nil:
		return map[string]any{"match": map[string]any{q.Match.Field: q.Match.Text}}
	case q.Term != nil:
		return map[string]any{"term": map[string]any{q.Term.Field: q.Term.Value}}
	case q.Bool != nil:
		clause := map[string]any{}
		if len(q.Bool.Must) > 0 {
			must := make([]map[string]any, 0, len(q.Bool.Must))
			for _, sub := range q.Bool.Must {
				must = append(must, sub.DSL())
			}
			clause["must"] = must
		}
		if len(q.Bool.Should) > 0 {
			should := make([]map[string]any, 0, len(q.Bool.Should))
			for _, sub := range q.Bool.Should {
				should = append(should, sub.DSL())
			}
			clause["should"] = should
			clause["minimum_should_match"] = 1
		}
		return map[string]any{"bool": clause}
	default:
		return map[string]any{"match_all": map[string]any{}}
	}
}
