package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Amount   int64  `json:"amount" validate:"required,gt=0"`
	Currency string `json:"currency" validate:"omitempty,currency"`
}

func TestValidate_OK(t *testing.T) {
	v := New()
	err := v.Validate(&sampleRequest{
		Email:    "user@example.com",
		Amount:   100,
		Currency: "PHP",
	})
	assert.NoError(t, err)
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	v := New()
	err := v.Validate(&sampleRequest{Email: "not-an-email", Amount: 0})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, vErr.Errors, "email")
	assert.Contains(t, vErr.Errors, "amount")
}

func TestCurrencyRule(t *testing.T) {
	v := New()

	for _, valid := range []string{"PHP", "USD", "EUR"} {
		assert.NoError(t, v.Validate(&sampleRequest{Email: "a@b.co", Amount: 1, Currency: valid}), valid)
	}
	for _, invalid := range []string{"php", "PH", "PESO", "P1P"} {
		assert.Error(t, v.Validate(&sampleRequest{Email: "a@b.co", Amount: 1, Currency: invalid}), invalid)
	}
}
