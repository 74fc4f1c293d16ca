package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GooseFX1/NestQuestWeb/pkg/config"
)

func TestHappyPath(t *testing.T) {
	ctx := context.Background()

	c := NewConfig(nil)
	_, err := c.Get(ctx)
	assert.Equal(t, config.ErrNoValue, err)

	c.SetValue("nestFGrTJ4QoRtvo8ZbASZZ2PSuv8AvvmaN1H31GhBQ")
	val, err := c.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "nestFGrTJ4QoRtvo8ZbASZZ2PSuv8AvvmaN1H31GhBQ", val)

	c.ClearValue()
	_, err = c.Get(ctx)
	assert.Equal(t, config.ErrNoValue, err)

	c.InduceErrors()
	_, err = c.Get(ctx)
	assert.Equal(t, errDeveloperInduced, err)

	c.StopInducingErrors()
	_, err = c.Get(ctx)
	assert.Equal(t, config.ErrNoValue, err)

	c.Shutdown()
	_, err = c.Get(ctx)
	assert.Equal(t, config.ErrShutdown, err)
}
