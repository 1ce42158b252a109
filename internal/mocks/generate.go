// Package mocks provides gomock implementations of the gateway ports.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our port interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	news := mocks.NewMockNewsGateway(ctrl)
//	news.EXPECT().List(gomock.Any()).Return(model.NewsList{}, nil)
package mocks

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=news_gateway_mock.go github.com/newsboard/newsboard/internal/ports NewsGateway

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=auth_gateway_mock.go github.com/newsboard/newsboard/internal/ports AuthGateway
