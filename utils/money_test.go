package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRound2(t *testing.T) {
	require.Equal(t, 150.46, Round2(150.456))
	require.Equal(t, 10.0, Round2(10.004))
	require.Equal(t, 0.0, Round2(0))
}

func TestNormalizeDTO(t *testing.T) {
	in := struct {
		Name   string
		Amount float64
	}{Name: "  Jane  ", Amount: 99.999}

	NormalizeDTO(&in)

	require.Equal(t, "Jane", in.Name)
	require.Equal(t, 100.0, in.Amount)
}
