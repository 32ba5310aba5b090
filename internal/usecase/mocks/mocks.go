package mocks

//go:generate mockgen -source=../interfaces.go -destination=mock_interfaces.go -package=mocks
