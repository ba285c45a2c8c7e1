package transcript

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendKeepsCallOrder(t *testing.T) {
	tr := New()
	var want []string
	for i := 0; i < 50; i++ {
		text := fmt.Sprintf("msg-%d", i)
		want = append(want, text)
		if i%2 == 0 {
			tr.Append(User(text))
		} else {
			tr.Append(Bot(text))
		}
	}

	var got []string
	for _, m := range tr.Messages() {
		got = append(got, m.Text)
	}
	assert.Equal(t, want, got)
}

func TestAppendAllowsDuplicates(t *testing.T) {
	tr := New()
	m := User("same")
	tr.Append(m)
	tr.Append(m)
	assert.Equal(t, 2, tr.Len())
}

func TestReplaceLastOnlyTouchesFinalElement(t *testing.T) {
	tr := New(Bot("greeting"), User("chest pain"), Placeholder())
	before := tr.Messages()

	reply := Bot("Please describe onset and duration.")
	require.NoError(t, tr.ReplaceLast(reply))

	after := tr.Messages()
	require.Len(t, after, len(before))
	assert.Equal(t, before[:len(before)-1], after[:len(after)-1])
	assert.Equal(t, reply, after[len(after)-1])
	assert.False(t, tr.Pending())
}

func TestReplaceLastOnEmpty(t *testing.T) {
	tr := New()
	gen := tr.Generation()

	err := tr.ReplaceLast(Bot("orphan"))

	var pe *PreconditionError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "replace last", pe.Op)
	assert.Equal(t, 0, tr.Len())
	assert.Equal(t, gen, tr.Generation())
}

func TestClear(t *testing.T) {
	tr := New(Bot("greeting"), User("hi"), Placeholder())
	gen := tr.Generation()

	tr.Clear()

	assert.Equal(t, 0, tr.Len())
	assert.Equal(t, gen+1, tr.Generation())
	_, ok := tr.Last()
	assert.False(t, ok)

	tr.Clear()
	assert.Equal(t, gen+2, tr.Generation())
}

func TestMessagesReturnsCopy(t *testing.T) {
	tr := New(Bot("greeting"))
	msgs := tr.Messages()
	msgs[0].Text = "mutated"

	last, _ := tr.Last()
	assert.Equal(t, "greeting", last.Text)
}

func TestPlaceholder(t *testing.T) {
	p := Placeholder()
	assert.Equal(t, RoleBot, p.Role)
	assert.Equal(t, PlaceholderText, p.Text)
	assert.True(t, p.Pending)
	assert.Len(t, p.ID, 8)

	tr := New(User("hi"))
	assert.False(t, tr.Pending())
	tr.Append(p)
	assert.True(t, tr.Pending())
}
