package assert

import (
	"testing"

	"github.com/iov-one/custody/errors"
)

func TestIsErr(t *testing.T) {
	cases := map[string]struct {
		ErrWant  error
		ErrGot   error
		WantFail bool
	}{
		"same error": {
			ErrWant: errors.ErrEmpty,
			ErrGot:  errors.ErrEmpty,
		},
		"different error": {
			ErrWant:  errors.ErrNotFound,
			ErrGot:   errors.ErrEmpty,
			WantFail: true,
		},
		"both nil": {},
		"wrapped": {
			ErrWant: errors.ErrEmpty,
			ErrGot:  errors.Wrap(errors.ErrEmpty, "test"),
		},
		"nil got": {
			ErrWant:  errors.ErrEmpty,
			WantFail: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			mock := &tmock{TB: t}
			IsErr(mock, tc.ErrWant, tc.ErrGot)
			if failed := mock.failcalls > 0; tc.WantFail != failed {
				t.Fatalf("unexpected failed call state: %d failures", mock.failcalls)
			}
		})
	}
}

func TestFieldError(t *testing.T) {
	cases := map[string]struct {
		Err      error
		Name     string
		WantErr  *errors.Error
		WantFail bool
	}{
		"single error is found": {
			Err:     errors.Field("Threshold", errors.ErrInput, "too big"),
			Name:    "Threshold",
			WantErr: errors.ErrInput,
		},
		"nil when no error for that field": {
			Err:  errors.Field("Threshold", errors.ErrInput, "too big"),
			Name: "Recipient",
		},
		"nil fails when an error was found": {
			Err:      errors.Field("Threshold", errors.ErrInput, "too big"),
			Name:     "Threshold",
			WantFail: true,
		},
		"two errors for one field fail": {
			Err: errors.Append(
				errors.Field("Amount", errors.ErrAmount, "first"),
				errors.Field("Amount", errors.ErrAmount, "second"),
			),
			Name:     "Amount",
			WantErr:  errors.ErrAmount,
			WantFail: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			mock := &tmock{TB: t}
			FieldError(mock, tc.Err, tc.Name, tc.WantErr)
			if failed := mock.failcalls > 0; tc.WantFail != failed {
				t.Fatalf("unexpected failed call state: %d failures", mock.failcalls)
			}
		})
	}
}

func TestNil(t *testing.T) {
	var nilPtr *int
	mock := &tmock{TB: t}
	Nil(mock, nilPtr)
	Nil(mock, nil)
	if mock.failcalls != 0 {
		t.Fatalf("want no failures, got %d", mock.failcalls)
	}
	Nil(mock, 1)
	if mock.failcalls != 1 {
		t.Fatalf("want one failure, got %d", mock.failcalls)
	}
}

// tmock mocks testing.TB and only counts failure calls. It ignores all other
// input.
type tmock struct {
	testing.TB
	failcalls int
}

func (t *tmock) Error(args ...interface{}) {
	t.TB.Log(args...)
	t.failcalls++
}

func (t *tmock) Errorf(s string, args ...interface{}) {
	t.TB.Logf(s, args...)
	t.failcalls++
}

func (t *tmock) Fatal(args ...interface{}) {
	t.TB.Log(args...)
	t.failcalls++
}

func (t *tmock) Fatalf(s string, args ...interface{}) {
	t.TB.Logf(s, args...)
	t.failcalls++
}
