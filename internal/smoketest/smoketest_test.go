package smoketest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-scenestrip/internal/led"
	"github.com/coreman2200/funtimes-scenestrip/internal/led/fake"
)

type titles []string

func (t *titles) Notify(title, _ string) { *t = append(*t, title) }

func TestRunPlaysFullSequence(t *testing.T) {
	sink := &fake.Sink{}
	strip, err := led.NewBuffer(3, sink)
	require.NoError(t, err)

	var holds []time.Duration
	var got titles
	err = Run(context.Background(), strip,
		WithNotifier(&got),
		WithSleep(func(_ context.Context, d time.Duration) error {
			holds = append(holds, d)
			return nil
		}))
	require.NoError(t, err)

	assert.Equal(t, titles{TitleStart, TitleOK}, got)
	assert.Equal(t, []time.Duration{
		SolidHold, SolidHold, SolidHold,
		ChaseHold, ChaseHold, ChaseHold,
		SolidHold,
	}, holds)

	frames := sink.Frames()
	require.Len(t, frames, 8)
	assert.Equal(t, []byte{4, 0, 0, 4, 0, 0, 4, 0, 0}, frames[0])
	assert.Equal(t, []byte{0, 4, 0, 0, 4, 0, 0, 4, 0}, frames[1])
	assert.Equal(t, []byte{0, 0, 4, 0, 0, 4, 0, 0, 4}, frames[2])
	for i := 0; i < 3; i++ {
		assert.Equal(t, []int{i}, fake.Lit(frames[3+i]))
		assert.Equal(t, []byte{2, 2, 2}, frames[3+i][i*3:i*3+3])
	}
	assert.Equal(t, []byte{3, 2, 1, 3, 2, 1, 3, 2, 1}, frames[6])
	assert.Empty(t, fake.Lit(frames[7]))
}

func TestRunCancelledBlanksStrip(t *testing.T) {
	sink := &fake.Sink{}
	strip, err := led.NewBuffer(2, sink)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	var got titles
	err = Run(ctx, strip,
		WithNotifier(&got),
		WithSleep(func(ctx context.Context, _ time.Duration) error {
			cancel()
			return ctx.Err()
		}))
	require.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, titles{TitleStart}, got)
	frames := sink.Frames()
	require.Len(t, frames, 2)
	assert.Empty(t, fake.Lit(frames[1]))
}

func TestRunStopsOnRefreshError(t *testing.T) {
	boom := errors.New("spi tx")
	strip, err := led.NewBuffer(2, &fake.Sink{Err: boom})
	require.NoError(t, err)

	err = Run(context.Background(), strip, WithSleep(func(context.Context, time.Duration) error { return nil }))
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "red")
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "chase", Chase.String())
	assert.Equal(t, "phase(9)", Phase(9).String())
}
