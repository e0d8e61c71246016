package timeline_test

import (
	"context"
	"testing"

	"github.com/erigontech/chainview/timeline"
	"github.com/stretchr/testify/require"
)

func TestCallEmptyKind(t *testing.T) {
	tl := timeline.Build(timeline.Entry{Name: "fromMin", Kind: timeline.Empty})
	seq, err := tl.Call(context.Background(), "fromMin", nil, nil, 10)
	require.NoError(t, err)
	require.Empty(t, seq)
}

func TestCallZeroCountNeverTouchesStore(t *testing.T) {
	called := false
	tl := timeline.Build(timeline.Entry{
		Name: "fromMax",
		Kind: timeline.Absolute,
		Seed: []any{uint64(0)},
		Abs: func(ctx context.Context, seed []any, args []any, count int) (timeline.Sequence, error) {
			called = true
			return timeline.Sequence{"should not appear"}, nil
		},
	})
	seq, err := tl.Call(context.Background(), "fromMax", nil, nil, 0)
	require.NoError(t, err)
	require.Empty(t, seq)
	require.False(t, called, "count == 0 must not invoke the store call")
}

func TestCallAbsolute(t *testing.T) {
	tl := timeline.Build(timeline.Entry{
		Name: "sinceMin",
		Kind: timeline.Absolute,
		Seed: []any{uint64(0)},
		Abs: func(ctx context.Context, seed []any, args []any, count int) (timeline.Sequence, error) {
			require.Equal(t, []any{uint64(0)}, seed)
			return timeline.Sequence{"a", "b"}, nil
		},
	})
	seq, err := tl.Call(context.Background(), "sinceMin", nil, nil, 5)
	require.NoError(t, err)
	require.Equal(t, timeline.Sequence{"a", "b"}, seq)
}

func TestCallIdentifierFound(t *testing.T) {
	tl := timeline.Build(timeline.Entry{
		Name: "fromHash",
		Kind: timeline.Identifier,
		Lookup: func(ctx context.Context, value any) (any, bool, error) {
			if value == "deadbeef" {
				return "anchor-record", true, nil
			}
			return nil, false, nil
		},
		Rec: func(ctx context.Context, anchor any, args []any, count int) (timeline.Sequence, error) {
			require.Equal(t, "anchor-record", anchor)
			return timeline.Sequence{1, 2, 3}, nil
		},
	})
	seq, err := tl.Call(context.Background(), "fromHash", "deadbeef", nil, 10)
	require.NoError(t, err)
	require.Equal(t, timeline.Sequence{1, 2, 3}, seq)
}

func TestCallIdentifierNotFound(t *testing.T) {
	tl := timeline.Build(timeline.Entry{
		Name: "fromHash",
		Kind: timeline.Identifier,
		Lookup: func(ctx context.Context, value any) (any, bool, error) {
			return nil, false, nil
		},
		Rec: func(ctx context.Context, anchor any, args []any, count int) (timeline.Sequence, error) {
			t.Fatal("Rec must not run on a lookup miss")
			return nil, nil
		},
	})
	_, err := tl.Call(context.Background(), "fromHash", "missing", nil, 10)
	require.ErrorIs(t, err, timeline.ErrNotFound)
}

func TestCallUnknownEntry(t *testing.T) {
	tl := timeline.Build()
	_, err := tl.Call(context.Background(), "nope", nil, nil, 10)
	require.Error(t, err)
}

func TestBuildDuplicateNamePanics(t *testing.T) {
	defer func() {
		require.NotNil(t, recover())
	}()
	timeline.Build(
		timeline.Entry{Name: "fromMin", Kind: timeline.Empty},
		timeline.Entry{Name: "fromMin", Kind: timeline.Empty},
	)
}

func TestHas(t *testing.T) {
	tl := timeline.Build(timeline.Entry{Name: "fromMin", Kind: timeline.Empty})
	require.True(t, tl.Has("fromMin"))
	require.False(t, tl.Has("sinceMax"))
}

func TestGenerateAbsoluteParameters(t *testing.T) {
	from := func(ctx context.Context, seed []any, args []any, count int) (timeline.Sequence, error) {
		return timeline.Sequence{"from-ran"}, nil
	}
	since := func(ctx context.Context, seed []any, args []any, count int) (timeline.Sequence, error) {
		return timeline.Sequence{"since-ran"}, nil
	}
	entries := timeline.GenerateAbsoluteParameters("", []any{uint64(0)}, []any{uint64(1)}, from, since)
	require.Len(t, entries, 4)

	tl := timeline.Build(entries...)
	seq, err := tl.Call(context.Background(), "fromMin", nil, nil, 10)
	require.NoError(t, err)
	require.Empty(t, seq)

	seq, err = tl.Call(context.Background(), "sinceMax", nil, nil, 10)
	require.NoError(t, err)
	require.Empty(t, seq)

	seq, err = tl.Call(context.Background(), "fromMax", nil, nil, 10)
	require.NoError(t, err)
	require.Equal(t, timeline.Sequence{"from-ran"}, seq)

	seq, err = tl.Call(context.Background(), "sinceMin", nil, nil, 10)
	require.NoError(t, err)
	require.Equal(t, timeline.Sequence{"since-ran"}, seq)
}

func TestGenerateIDParameters(t *testing.T) {
	lookup := func(ctx context.Context, value any) (any, bool, error) {
		return "anchor", true, nil
	}
	from := func(ctx context.Context, anchor any, args []any, count int) (timeline.Sequence, error) {
		return timeline.Sequence{"from"}, nil
	}
	since := func(ctx context.Context, anchor any, args []any, count int) (timeline.Sequence, error) {
		return timeline.Sequence{"since"}, nil
	}
	entries := timeline.GenerateIDParameters("", "Hash", lookup, from, since)
	require.Len(t, entries, 2)

	tl := timeline.Build(entries...)
	seq, err := tl.Call(context.Background(), "fromHash", "x", nil, 10)
	require.NoError(t, err)
	require.Equal(t, timeline.Sequence{"from"}, seq)

	seq, err = tl.Call(context.Background(), "sinceHash", "x", nil, 10)
	require.NoError(t, err)
	require.Equal(t, timeline.Sequence{"since"}, seq)
}
