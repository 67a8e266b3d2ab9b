package grpcbearer

import "github.com/bearergate/bearergate/core"

// Option defines a functional option for configuring the Interceptor.
type Option func(*Interceptor)

// WithExcludedMethods allows configuring a list of gRPC methods to exclude from JWT validation.
func WithExcludedMethods(methods []string) Option {
	methodSet := make(map[string]struct{}, len(methods))
	for _, m := range methods {
		methodSet[m] = struct{}{}
	}
	return func(i *Interceptor) {
		i.exclusionChecker = func(method string) bool {
			_, ok := methodSet[method]
			return ok
		}
	}
}

// WithExclusionChecker allows configuring a custom exclusion checker for gRPC methods.
func WithExclusionChecker(checker func(string) bool) Option {
	return func(i *Interceptor) {
		i.exclusionChecker = checker
	}
}

// WithLogger logs rejected calls with their error code.
func WithLogger(logger core.Logger) Option {
	return func(i *Interceptor) {
		i.logger = logger
	}
}
