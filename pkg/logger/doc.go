// Package logger builds *slog.Logger instances configured with functional
// options and decorated with context extractors.
//
// New picks a text or JSON handler, applies static attributes, and wraps the
// handler with ContextHandler, which runs every registered
// ContextExtractor on each record. Request-scoped values such as the request
// ID, tenant, and schema therefore appear on every line logged with a request
// context without being threaded through call sites.
//
//	log := logger.New(
//	    logger.WithEnvironment("production", "identity-api"),
//	    logger.WithContextExtractors(httpmw.RequestIDExtractor, tenancy.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "tenant created", logger.TenantID(id))
//
// Attribute helpers in attr.go keep key names consistent across packages.
// Error, Errors and the ID helpers return an empty slog.Attr for nil input so
// they can be passed unconditionally.
package logger
