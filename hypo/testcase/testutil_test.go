package testcase_test

import (
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/uberbrodt/hypo-go/hypo/internal/mock"
)

// Use when testing the [testcase.Case] and assure that it fails a test when expected.
//
// It sets up AnyTimes expectations on all the methods used. If you want to assert
// that it calls the [*testing.T] in a certain way, pass it an [expects] function reference
// that will set expectations ahead of the default expectations.
//
// # Example
//
//	exs := func(m *mock.MockTLike) {
//		m.EXPECT().Errorf("%s", gomock.Any()).Times(1)
//	}
//	fakeT := standardFakeT(t, &exs)
func standardFakeT(t *testing.T, expects *func(ft *mock.MockTLike)) *mock.MockTLike {
	ctrl := gomock.NewController(t)
	fakeT := mock.NewMockTLike(ctrl)

	if expects != nil {
		e := *expects
		e(fakeT)
	}

	fakeT.EXPECT().Deadline().Return(time.Now().Add(3*time.Second), true).Times(1)
	fakeT.EXPECT().Logf(gomock.Any(), gomock.Any()).AnyTimes()
	fakeT.EXPECT().Helper().AnyTimes()
	fakeT.EXPECT().Errorf(gomock.Any(), gomock.Any()).AnyTimes()

	return fakeT
}
