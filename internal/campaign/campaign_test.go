package campaign

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neethishnk/hawkcards/internal/model"
)

func TestWhatsAppLink(t *testing.T) {
	assert.Equal(t, "https://wa.me/15550123456", WhatsAppLink("+1 (555) 012-3456", ""))
	assert.Equal(t, "https://wa.me/491522334455?text=Hi%20there%21%20How%20are%20you%3F",
		WhatsAppLink("491522334455", "Hi there! How are you?"))
}

func TestBuild(t *testing.T) {
	seg := &model.ContactSegment{ID: "seg-2", Name: "VIP"}
	tm := &model.MessageTemplate{ID: "tm-1", Content: "Happy New Year!"}
	members := []model.Contact{
		{ID: "c-2", Name: "Emily Watson", Phone: "15550123456", Tag: "VIP"},
	}

	c, err := Build(seg, tm, members)
	require.NoError(t, err)
	require.Len(t, c.Messages, 1)
	assert.Equal(t, "https://wa.me/15550123456?text=Happy%20New%20Year%21", c.Messages[0].Link)
	assert.Equal(t, "Emily Watson", c.Messages[0].Name)

	empty, err := Build(seg, tm, nil)
	require.NoError(t, err)
	assert.NotNil(t, empty.Messages)
	assert.Empty(t, empty.Messages)
}

func TestBuildRequiresSelection(t *testing.T) {
	_, err := Build(nil, &model.MessageTemplate{}, nil)
	assert.ErrorIs(t, err, ErrSelectionRequired)
}
