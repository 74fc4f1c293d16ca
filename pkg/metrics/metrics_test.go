package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTraceMethodCall_NoTransaction(t *testing.T) {
	tracer := TraceMethodCall(context.Background(), "nestquest", "FetchStake")
	assert.Nil(t, tracer)

	// A nil tracer is safe to use
	tracer.AddAttribute("wallet", "abc")
	tracer.AddAttributes(map[string]interface{}{"mint": "def"})
	tracer.OnError(errors.New("failure"))
	assert.Zero(t, tracer.Elapsed())
	tracer.End()
}

func TestRecord_NoApplication(t *testing.T) {
	ctx := context.Background()

	assert.NotPanics(t, func() {
		RecordEvent(ctx, "NestQuestStake", map[string]interface{}{"mint": "abc"})
		RecordCount(ctx, "nestquest.owned", 3)
		RecordDuration(ctx, "nestquest.stake", time.Second)
	})

	ctx = NewContext(ctx, nil)
	_, ok := fromContext(ctx)
	assert.False(t, ok)
	assert.NotPanics(t, func() {
		RecordCount(ctx, "nestquest.owned", 3)
	})
}
