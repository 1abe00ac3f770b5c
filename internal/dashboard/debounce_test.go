package dashboard

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu  sync.Mutex
	got []string
}

func (r *recorder) add(s string) {
	r.mu.Lock()
	r.got = append(r.got, s)
	r.mu.Unlock()
}

func (r *recorder) values() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.got...)
}

func TestDebouncer_CoalescesBursts(t *testing.T) {
	rec := &recorder{}
	d := NewDebouncer(30*time.Millisecond, rec.add)

	for _, s := range []string{"a", "an", "ann"} {
		d.Push(s)
		time.Sleep(5 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return len(rec.values()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, []string{"ann"}, rec.values())
}

func TestDebouncer_SeparateQuietPeriods(t *testing.T) {
	rec := &recorder{}
	d := NewDebouncer(10*time.Millisecond, rec.add)

	d.Push("a")
	require.Eventually(t, func() bool { return len(rec.values()) == 1 }, time.Second, 2*time.Millisecond)
	d.Push("b")
	require.Eventually(t, func() bool { return len(rec.values()) == 2 }, time.Second, 2*time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, rec.values())
}

func TestDebouncer_Stop(t *testing.T) {
	rec := &recorder{}
	d := NewDebouncer(10*time.Millisecond, rec.add)

	d.Push("a")
	d.Stop()
	d.Push("b")
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, rec.values())
}
