// Package mocks provides mock implementations for testing.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the interfaces in internal/core. To regenerate after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	repo := mocks.NewMockPaymentRepository(ctrl)
//	repo.EXPECT().IsPaid(gomock.Any(), "job-1").Return(true, nil)
package mocks

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=core_mock.go github.com/cataworks/cata-api/internal/core CatalogGenerator,PaymentRepository,PayLinkCreator,JobRegistry
