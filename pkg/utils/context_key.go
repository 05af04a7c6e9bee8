package utils

// ContextKey namespaces request-context values set by the middleware chain.
type ContextKey string
