package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFromGateway(t *testing.T) {
	cases := []struct {
		in   string
		want TransactionStatus
	}{
		{"success", StatusSuccessful},
		{"successful", StatusSuccessful},
		{"SUCCESSFUL", StatusSuccessful},
		{" success ", StatusSuccessful},
		{"failed", StatusFailed},
		{"error", StatusFailed},
		{"pending", StatusPending},
		{"processing", StatusPending},
		{"new", StatusPending},
		{"", StatusPending},
		{"weird-gateway-state", StatusPending},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, StatusFromGateway(c.in), "input %q", c.in)
	}
}

func TestAmountMinor(t *testing.T) {
	trn := Transaction{Amount: "500"}
	got, err := trn.AmountMinor()
	require.NoError(t, err)
	assert.Equal(t, int64(500), got)

	trn.Amount = "500.75"
	got, err = trn.AmountMinor()
	require.NoError(t, err)
	assert.Equal(t, int64(500), got)

	trn.Amount = "not a number"
	_, err = trn.AmountMinor()
	assert.Error(t, err)
}

func TestSettled(t *testing.T) {
	trn := Transaction{Status: StatusPending}
	assert.False(t, trn.Settled())
	trn.Status = StatusSuccessful
	assert.True(t, trn.Settled())
	trn.Status = StatusFailed
	assert.False(t, trn.Settled())
}
