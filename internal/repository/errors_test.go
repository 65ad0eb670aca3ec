package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslateErr(t *testing.T) {
	cases := []struct {
		name string
		in   error
		want error
	}{
		{"nil passes through", nil, nil},
		{"missing table", errors.New("Error 1146 (42S02): Table 'stayhub.hotels' doesn't exist"), ErrSchemaMissing},
		{"duplicate email", errors.New("Error 1062 (23000): Duplicate entry 'demo@example.com' for key 'users.email'"), ErrEmailExists},
		{"foreign key", errors.New("Error 1452 (23000): Cannot add or update a child row"), ErrConstraint},
		{"unknown error untouched", errors.New("connection refused"), errors.New("connection refused")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := translateErr(tc.in)
			if tc.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.EqualError(t, got, tc.want.Error())
		})
	}
}
