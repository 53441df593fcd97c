package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_FormatPrice(t *testing.T) {
	t.Run("groups thousands for display", func(t *testing.T) {
		require.Equal(t, "1,500.50", formatPrice(1500.5))
		require.Equal(t, "37,500.00", formatPrice(37500))
	})

	t.Run("small values keep two decimals", func(t *testing.T) {
		require.Equal(t, "0.00", formatPrice(0))
		require.Equal(t, "1.35", formatPrice(1.35))
		require.Equal(t, "-200.00", formatPrice(-200))
	})
}
