package exitcode

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/realestatead/adctl/internal/api"
)

func TestDetermine(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, Success},
		{"plain error", errors.New("boom"), GeneralError},
		{"unauthenticated", &api.Error{Kind: api.KindUnauthenticated}, AuthError},
		{"transport", &api.Error{Kind: api.KindTransport}, NetworkError},
		{"validation", &api.Error{Kind: api.KindValidation}, ValidationError},
		{"server fault", &api.Error{Kind: api.KindServerFault}, GeneralError},
		{"not found", &api.Error{Kind: api.KindNotFound}, GeneralError},
		{"rate limited", &api.Error{Kind: api.KindRateLimited}, GeneralError},
		{"wrapped", fmt.Errorf("loading agents: %w", &api.Error{Kind: api.KindTransport}), NetworkError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Determine(tc.err))
		})
	}
}
