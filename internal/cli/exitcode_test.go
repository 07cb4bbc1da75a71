package cli_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/hbjs97/rv/internal/cli"
	"github.com/hbjs97/rv/internal/profile"
	"github.com/hbjs97/rv/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want cli.ExitCode
	}{
		{"nil", nil, cli.ExitSuccess},
		{"general", errors.New("boom"), cli.ExitGeneral},
		{"profile not found", fmt.Errorf("wrap: %w", &profile.NotFoundError{Selector: "a.b", Segment: "b", Consumed: "a"}), cli.ExitProfileNotFound},
		{"store corrupt", &store.CorruptError{Path: "/x", Err: errors.New("bad")}, cli.ExitStoreCorrupt},
		{"settings", fmt.Errorf("x: %w", cli.ErrConfig), cli.ExitConfigError},
		{"rv.toml", fmt.Errorf("x: %w", cli.ErrInvalidConfig), cli.ExitConfigError},
		{"no rv.toml", fmt.Errorf("x: %w", cli.ErrConfigUnavailable), cli.ExitGeneral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cli.MapExitCode(tt.err))
		})
	}
}
