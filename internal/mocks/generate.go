// Package mocks provides generated mock implementations for ports used in
// unit tests.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks.
// To regenerate after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	mockStatus := mocks.NewMockAccountStatusRepository(ctrl)
//	mockStatus.EXPECT().StatusForAdmin(gomock.Any(), "user-1").Return(auth.AccountActive, nil).Times(1)
package mocks

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=ports_mock.go github.com/bkndhn/bazaar-api/internal/ports AccountStatusRepository,PaymentCredentialsRepository,PaymentGateway,OrderRepository,ShippingSettingsRepository,CarrierTracker
