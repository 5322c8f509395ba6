package middleware

import (
	"ripple/internal/observability"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Tracing starts a server span for each request and propagates it through
// the request's user context so repository spans nest under it.
func Tracing() fiber.Handler {
	return func(c *fiber.Ctx) error {
		span, ctx := observability.NewSpan(c.UserContext(),
			c.Method()+" "+c.Path(),
			trace.WithSpanKind(trace.SpanKindServer),
		)
		defer span.End()

		span.AddAttributes(
			attribute.String("http.method", c.Method()),
			attribute.String("http.target", c.Path()),
		)
		c.SetUserContext(ctx)

		err := c.Next()

		span.AddAttributes(attribute.Int("http.status_code", c.Response().StatusCode()))
		if err != nil {
			span.SetError(err)
		}
		return err
	}
}
