// Package graph expone los casos de uso como API GraphQL (graph-gophers/graphql-go).
package graph

import (
	_ "embed"

	graphql "github.com/graph-gophers/graphql-go"
)

//go:embed schema.graphql
var schemaSDL string

// NewSchema valida el SDL contra los resolvers; falla si falta alguno.
func NewSchema(r *Resolver) (*graphql.Schema, error) {
	return graphql.ParseSchema(schemaSDL, r,
		graphql.MaxDepth(12),
		graphql.MaxParallelism(10),
	)
}
