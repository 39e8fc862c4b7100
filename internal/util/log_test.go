package util_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github/chapool/go-hdwallet/internal/util"
)

func TestLogFromContext(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf)

	ctx := util.WithLogger(context.Background(), l)
	util.LogFromContext(ctx).Info().Msg("from context")

	assert.Contains(t, buf.String(), "from context")
}

func TestLogFromContextFallsBackToGlobal(t *testing.T) {
	assert.Equal(t, &log.Logger, util.LogFromContext(context.Background()))
}
