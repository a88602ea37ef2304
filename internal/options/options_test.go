package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type chartConfig struct {
	Width  int
	Color  string
	Called []string
}

func withWidth(w int) Option[*chartConfig] {
	return New(func(c *chartConfig) error {
		if w <= 0 {
			return errors.New("width must be positive")
		}
		c.Width = w
		c.Called = append(c.Called, "width")

		return nil
	})
}

func withColor(color string) Option[*chartConfig] {
	return NoError(func(c *chartConfig) {
		c.Color = color
		c.Called = append(c.Called, "color")
	})
}

func TestApply(t *testing.T) {
	t.Run("applies options in order", func(t *testing.T) {
		cfg := &chartConfig{}
		require.NoError(t, Apply(cfg, withColor("#2563eb"), withWidth(640)))
		require.Equal(t, 640, cfg.Width)
		require.Equal(t, "#2563eb", cfg.Color)
		require.Equal(t, []string{"color", "width"}, cfg.Called)
	})

	t.Run("stops at first error", func(t *testing.T) {
		cfg := &chartConfig{}
		err := Apply(cfg, withWidth(-1), withColor("red"))
		require.EqualError(t, err, "width must be positive")
		require.Empty(t, cfg.Color)
	})

	t.Run("skips nil options", func(t *testing.T) {
		cfg := &chartConfig{}
		require.NoError(t, Apply(cfg, nil, withColor("blue")))
		require.Equal(t, "blue", cfg.Color)
	})

	t.Run("no options", func(t *testing.T) {
		cfg := &chartConfig{Width: 3}
		require.NoError(t, Apply(cfg))
		require.Equal(t, 3, cfg.Width)
	})
}
