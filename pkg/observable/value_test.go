package observable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValue_SetNotifiesInOrder(t *testing.T) {
	v := NewValue(0)
	var calls []string

	v.Listen(func(n int) { calls = append(calls, "first") })
	v.Listen(func(n int) { calls = append(calls, "second") })
	v.Set(1)

	assert.Equal(t, 1, v.Get())
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestValue_SubscribeReceivesCurrentValue(t *testing.T) {
	v := NewValue("a")
	var seen []string

	unsubscribe := v.Subscribe(func(s string) { seen = append(seen, s) })
	v.Set("b")
	unsubscribe()
	unsubscribe()
	v.Set("c")

	assert.Equal(t, []string{"a", "b"}, seen)
	assert.Equal(t, 0, v.Listeners())
}

func TestDerive(t *testing.T) {
	src := NewValue([]int{})
	count := Derive[[]int, int](src, func(list []int) int { return len(list) })

	assert.Equal(t, 0, count.Get())

	var seen []int
	count.Listen(func(n int) { seen = append(seen, n) })
	src.Set([]int{1, 2})
	src.Set([]int{1, 2, 3})

	assert.Equal(t, 3, count.Get())
	assert.Equal(t, []int{2, 3}, seen)
}
