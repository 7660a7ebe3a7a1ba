package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/channel --output domain/channel --outpkg channelmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name QuotaTracker --dir ../domain/provider --output domain/provider --outpkg providermock --filename quota_tracker_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name CredentialRepository --dir ../domain/provider --output domain/provider --outpkg providermock --filename credential_repository_mock.go
