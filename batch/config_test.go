package batch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	req := require.New(t)

	opts := Opts{MaxSize: 1, MaxLinger: 10 * time.Millisecond}
	req.Panics(opts.validate)

	opts = Opts{MaxSize: 3}
	req.Panics(opts.validate)

	opts = Opts{MaxSize: 3, MaxLinger: time.Millisecond}
	req.NotPanics(opts.validate)
}
