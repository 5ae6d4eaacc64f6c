package store

import (
	"errors"
	"reflect"
	"testing"
)

func TestChunkRange(t *testing.T) {
	var chunks [][2]int
	err := ChunkRange(10, 4, func(start, end int) error {
		chunks = append(chunks, [2]int{start, end})
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [][2]int{{0, 4}, {4, 8}, {8, 10}}
	if !reflect.DeepEqual(chunks, want) {
		t.Errorf("chunks = %v, want %v", chunks, want)
	}
}

func TestChunkRangeZeroTotal(t *testing.T) {
	calls := 0
	if err := ChunkRange(0, 4, func(start, end int) error {
		calls++
		return nil
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 0 {
		t.Errorf("fn called %d times for empty range", calls)
	}
}

func TestChunkRangePropagatesError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := ChunkRange(10, 4, func(start, end int) error {
		calls++
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want boom", err)
	}
	if calls != 1 {
		t.Errorf("fn called %d times after error, want 1", calls)
	}
}
