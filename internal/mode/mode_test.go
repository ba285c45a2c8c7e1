package mode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{in: "chatbot", want: Chatbot},
		{in: "cardiologist", want: Cardiologist},
		{in: "image", want: Image},
		{in: "surgeon", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestViewsShareSelector(t *testing.T) {
	s := NewSelector(Chatbot)

	assert.Equal(t, Cardiologist, Sidebar.Cycle(s))
	assert.Equal(t, Cardiologist, s.Mode())
	assert.Equal(t, "Cardiologist", Sidebar.Label(s.Mode()))
	assert.Equal(t, -1, Composer.Index(s.Mode()))
	assert.Equal(t, "—", Composer.Label(s.Mode()))

	// a view that does not list the current mode starts from its first option
	assert.Equal(t, Chatbot, Composer.Cycle(s))
	assert.Equal(t, 0, Sidebar.Index(s.Mode()))
	assert.Equal(t, "Select your position", Sidebar.Label(s.Mode()))

	assert.Equal(t, Report, Composer.Cycle(s))
	assert.Equal(t, Image, Composer.Cycle(s))
	assert.Equal(t, Chatbot, Composer.Cycle(s))
}

func TestSelectorSet(t *testing.T) {
	s := NewSelector("bogus")
	assert.Equal(t, Chatbot, s.Mode())

	require.NoError(t, s.Set(Neurologist))
	assert.Equal(t, Neurologist, s.Mode())
	assert.Equal(t, 3, Sidebar.Index(s.Mode()))

	assert.Error(t, s.Set("bogus"))
	assert.Equal(t, Neurologist, s.Mode())
}
