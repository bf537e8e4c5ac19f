// Package mocks provides shared test doubles for the planner's interfaces.
//
// Two styles live here. Function-field mocks (MockJWTService,
// MockEventEmitter) return fixed values unless a Fn field overrides them.
// Testify mocks (TestifyMockSubjectStore) record calls and are configured
// with On/Return:
//
//	subjects := &mocks.TestifyMockSubjectStore{}
//	subjects.On("List", mock.Anything).Return(nil, errors.New("boom"))
//	defer subjects.AssertExpectations(t)
package mocks
