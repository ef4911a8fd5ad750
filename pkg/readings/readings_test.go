package readings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOr(t *testing.T) {
	zero, v := 0.0, 12.5
	assert.Equal(t, 400.0, Or(nil, Standard.Voltage))
	assert.Equal(t, 12.5, Or(&v, Standard.Voltage))
	assert.Equal(t, 0.0, Or(&zero, Standard.FuelLevel))
}

func TestStandard(t *testing.T) {
	assert.Equal(t, Defaults{FuelLevel: 100, Voltage: 400, Frequency: 50}, Standard)
}
