package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name     string `validate:"required,min=1,max=255"`
	Price    int64  `validate:"gte=0"`
	Quantity int    `validate:"required,gt=0"`
}

func TestCheck_Valid(t *testing.T) {
	violations := Check(sample{Name: "Laptop", Price: 0, Quantity: 1})

	assert.Nil(t, violations)
}

func TestCheck_CollectsAllViolations(t *testing.T) {
	violations := Check(sample{Name: "", Price: -1, Quantity: -1})

	require.Len(t, violations, 3)

	byField := make(map[string]string, len(violations))
	for _, v := range violations {
		byField[v.Field] = v.Message
	}

	assert.Equal(t, "is required", byField["name"])
	assert.Equal(t, "must be 0 or greater", byField["price"])
	assert.Equal(t, "must be greater than 0", byField["quantity"])
}

func TestCheck_NonStructValue(t *testing.T) {
	violations := Check(42)

	require.Len(t, violations, 1)
	assert.NotEmpty(t, violations[0].Message)
}
