package observer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmitDeliversInSubscriptionOrder(t *testing.T) {
	s := New[string]()
	var got []string
	s.On("topic", func(v string) { got = append(got, "a:"+v) })
	s.On("topic", func(v string) { got = append(got, "b:"+v) })
	s.On("other", func(v string) { got = append(got, "c:"+v) })

	require.Equal(t, 2, s.Emit("topic", "x"))
	require.Equal(t, []string{"a:x", "b:x"}, got)
}

func TestCancelDetachesHandler(t *testing.T) {
	s := New[int]()
	calls := 0
	sub := s.On("n", func(int) { calls++ })
	s.Emit("n", 1)
	sub.Cancel()
	sub.Cancel()
	s.Emit("n", 2)
	require.Equal(t, 1, calls)
	require.Equal(t, 0, s.Emit("n", 3))
}
