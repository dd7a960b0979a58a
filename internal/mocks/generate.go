package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/subscription --output domain/subscription --outpkg subscriptionmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Catalog --dir ../domain/trend --output domain/trend --outpkg trendmock --filename catalog_mock.go
