package handlers

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Ghufran-ali1/Grocery-Store-Server/internal/middleware"
)

// Operation is one entry of the dispatch table.
type Operation struct {
	Name   string
	Method string
	// Auth marks operations that need a valid bearer token.
	Auth   bool
	Handle func(c *fiber.Ctx, secondary string) error
}

// OperationSet is implemented by every handler that contributes operations,
// keyed by primary path segment.
type OperationSet interface {
	Operations() map[string]Operation
}

// Router dispatches /api/<primary>[/<secondary>] to a single operation.
type Router struct {
	ops          map[string]Operation
	authenticate func(c *fiber.Ctx) error
}

// NewRouter builds the dispatch table. authenticate guards operations marked Auth.
func NewRouter(authenticate func(c *fiber.Ctx) error, sets ...OperationSet) *Router {
	ops := make(map[string]Operation)
	for _, set := range sets {
		for primary, op := range set.Operations() {
			if _, dup := ops[primary]; dup {
				panic(fmt.Sprintf("handlers: primary path %q registered twice", primary))
			}
			ops[primary] = op
		}
	}
	return &Router{ops: ops, authenticate: authenticate}
}

// RegisterRoutes mounts the dispatcher on every path below router.
func (r *Router) RegisterRoutes(router fiber.Router) {
	router.All("/*", r.Dispatch)
}

// Dispatch resolves the operation for the request and runs it. Unknown primary
// segments answer 404, a wrong method 405, and any unclassified error 500.
func (r *Router) Dispatch(c *fiber.Ctx) error {
	raw := c.Params("*")
	primary, secondary, ok := splitPath(raw)
	if !ok {
		return writeError(c, fiber.StatusNotFound, fmt.Sprintf("No handler for path /api/%s was found.", strings.Trim(raw, "/")))
	}

	op, ok := r.ops[primary]
	if !ok {
		return writeError(c, fiber.StatusNotFound, fmt.Sprintf("No handler for primary path /api/%s was found.", primary))
	}
	c.Locals(middleware.OperationKey, op.Name)

	if c.Method() != op.Method {
		return writeError(c, fiber.StatusMethodNotAllowed, fmt.Sprintf("Method not allowed. Use %s.", op.Method))
	}

	if op.Auth && r.authenticate != nil {
		if err := r.authenticate(c); err != nil {
			return ErrorHandler(c, err)
		}
	}

	if err := op.Handle(c, secondary); err != nil {
		return ErrorHandler(c, err)
	}
	return nil
}

// splitPath cuts the still-escaped path into at most two segments and decodes
// each one, so an encoded "/" stays inside its segment. It reports false for
// deeper paths and for malformed escapes.
func splitPath(path string) (primary, secondary string, ok bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) > 2 {
		return "", "", false
	}
	decoded := make([]string, 2)
	for i, part := range parts {
		seg, err := url.PathUnescape(part)
		if err != nil {
			return "", "", false
		}
		decoded[i] = seg
	}
	return decoded[0], decoded[1], true
}
