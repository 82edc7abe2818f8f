package http

import (
	"github.com/gofiber/fiber/v2"
	graphql "github.com/graph-gophers/graphql-go"

	"github.com/jhoicas/storefront-api/internal/application/dto"
	"github.com/jhoicas/storefront-api/internal/interfaces/graph"
	"github.com/jhoicas/storefront-api/pkg/logger"
)

// GraphQLRequest cuerpo estándar de una operación GraphQL.
type GraphQLRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// GraphQLHandler ejecuta operaciones contra el schema.
type GraphQLHandler struct {
	schema       *graphql.Schema
	log          *logger.Logger
	secureCookie bool
}

// NewGraphQLHandler construye el handler.
func NewGraphQLHandler(schema *graphql.Schema, log *logger.Logger, secureCookie bool) *GraphQLHandler {
	return &GraphQLHandler{schema: schema, log: log, secureCookie: secureCookie}
}

// Handle godoc
// @Summary      Ejecutar una operación GraphQL
// @Tags         graphql
// @Accept       json
// @Produce      json
// @Param        body  body  GraphQLRequest  true  "query, operationName, variables"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /graphql [post]
func (h *GraphQLHandler) Handle(c *fiber.Ctx) error {
	var in GraphQLRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query es requerido"})
	}

	sess := &cookieSession{secure: h.secureCookie}
	ctx := graph.WithViewer(c.UserContext(), GetUserID(c))
	ctx = graph.WithSession(ctx, sess)

	resp := h.schema.Exec(ctx, in.Query, in.OperationName, in.Variables)
	if len(resp.Errors) > 0 {
		h.log.Debug().Int("errors", len(resp.Errors)).Str("operation", in.OperationName).Msg("graphql con errores")
	}
	sess.apply(c)
	return c.Status(fiber.StatusOK).JSON(resp)
}
