package service_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tayotravel/tourbook/internal/service"
)

var referencePattern = regexp.MustCompile(`^BK\d+[A-Z0-9]{5}$`)

func TestNewBookingReference(t *testing.T) {
	t.Run("matches expected shape", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			ref := service.NewBookingReference()
			assert.Regexp(t, referencePattern, ref)
		}
	})

	t.Run("collisions are rare", func(t *testing.T) {
		// Uniqueness is ultimately enforced by the database; here we only
		// require that generation is not degenerate.
		seen := make(map[string]struct{})
		for i := 0; i < 10000; i++ {
			seen[service.NewBookingReference()] = struct{}{}
		}
		assert.GreaterOrEqual(t, len(seen), 9995)
	})
}
