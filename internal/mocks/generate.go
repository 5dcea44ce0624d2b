// Package mocks provides generated mock implementations for testing.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the auth ports. The mocks are generated using go:generate directives and
// provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	gateway := mocks.NewMockAuthGateway(ctrl)
//	gateway.EXPECT().Login(gomock.Any(), gomock.Any()).Return(result, nil)
package mocks

// Generate mock for AuthGateway interface from internal/ports.
// This creates MockAuthGateway with methods for all AuthGateway interface methods:
// Login, Register, Logout, FetchIdentity, RequestPasswordReset, ConfirmPasswordReset
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=auth_gateway_mock.go github.com/jobdesk/jobdesk-go/internal/ports AuthGateway

// Generate mock for TokenStore interface from internal/ports.
// This creates MockTokenStore with methods for all TokenStore interface methods:
// Save, Load, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=token_store_mock.go github.com/jobdesk/jobdesk-go/internal/ports TokenStore
