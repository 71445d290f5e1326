package mocks

import (
	mock "github.com/stretchr/testify/mock"
)

// CredentialVerifier is a mock type for the CredentialVerifier type
type CredentialVerifier struct {
	mock.Mock
}

// Hash provides a mock function with given fields: password, salt
func (_m *CredentialVerifier) Hash(password string, salt []byte) []byte {
	ret := _m.Called(password, salt)

	if len(ret) == 0 {
		panic("no return value specified for Hash")
	}

	var r0 []byte
	if rf, ok := ret.Get(0).(func(string, []byte) []byte); ok {
		r0 = rf(password, salt)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}

	return r0
}

// NewSalt provides a mock function with no fields
func (_m *CredentialVerifier) NewSalt() ([]byte, error) {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for NewSalt")
	}

	var r0 []byte
	var r1 error
	if rf, ok := ret.Get(0).(func() ([]byte, error)); ok {
		return rf()
	}
	if rf, ok := ret.Get(0).(func() []byte); ok {
		r0 = rf()
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}

	if rf, ok := ret.Get(1).(func() error); ok {
		r1 = rf()
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewCredentialVerifier creates a new instance of CredentialVerifier. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewCredentialVerifier(t interface {
	mock.TestingT
	Cleanup(func())
}) *CredentialVerifier {
	mock := &CredentialVerifier{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
