// Package schema holds the GraphQL schema definition served by bookgraph.
// The SDL is embedded at compile time so the binary carries its own schema.
package schema

import (
	_ "embed"

	"github.com/pkg/errors"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

const SourceName = "schema.graphqls"

//go:embed schema.graphqls
var source string

// Source returns the raw SDL document.
func Source() string {
	return source
}

// Load parses and validates the embedded SDL together with the built-in
// scalars and introspection types.
func Load() (*ast.Schema, error) {
	s, err := gqlparser.LoadSchema(&ast.Source{Name: SourceName, Input: source})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load graphql schema")
	}
	return s, nil
}
