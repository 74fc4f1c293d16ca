package env

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/GooseFX1/NestQuestWeb/pkg/config"
)

func TestConfig(t *testing.T) {
	const key = "NESTQUEST_ENV_CONFIG_TEST_VAR"

	t.Setenv(key, " value ")
	v, err := NewConfig(key).Get(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []byte("value"), v)

	t.Setenv(key, "")
	v, err = NewConfig(key).Get(context.Background())
	assert.Nil(t, v)
	assert.Equal(t, config.ErrNoValue, err)
}

func TestConfig_LowercaseKey(t *testing.T) {
	t.Setenv("NESTQUEST_ENV_CONFIG_LOWER", "1")

	v, err := NewConfig("nestquest_env_config_lower").Get(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []byte("1"), v)
}

func TestTypedConfigs(t *testing.T) {
	ctx := context.Background()

	t.Setenv("NESTQUEST_TEST_MIN_STAKE", "25_000_000_000")
	t.Setenv("NESTQUEST_TEST_DURATION", "168h")
	t.Setenv("NESTQUEST_TEST_BOOL", "false")
	t.Setenv("NESTQUEST_TEST_AUTHORITY", "nestFGrTJ4QoRtvo8ZbASZZ2PSuv8AvvmaN1H31GhBQ")

	assert.EqualValues(t, 25_000_000_000, NewUint64Config("NESTQUEST_TEST_MIN_STAKE", 1).Get(ctx))
	assert.Equal(t, 168*time.Hour, NewDurationConfig("NESTQUEST_TEST_DURATION", time.Second).Get(ctx))
	assert.False(t, NewBoolConfig("NESTQUEST_TEST_BOOL", true).Get(ctx))
	assert.Len(t, NewPublicKeyConfig("NESTQUEST_TEST_AUTHORITY", nil).Get(ctx), 32)

	assert.Equal(t, "fallback", NewStringConfig("NESTQUEST_TEST_UNSET", "fallback").Get(ctx))
}
