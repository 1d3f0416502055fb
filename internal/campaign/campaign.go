package campaign

import (
	"errors"
	"net/url"
	"regexp"
	"strings"

	"github.com/neethishnk/hawkcards/internal/model"
)

// ErrSelectionRequired means the segment or template was not chosen.
var ErrSelectionRequired = errors.New("select both a segment and a template")

var nonDigits = regexp.MustCompile(`\D`)

// Message is one prepared WhatsApp message for a segment member.
type Message struct {
	ContactID string `json:"contactId"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Link      string `json:"link"`
}

// Campaign is a template rendered for every member of a segment.
type Campaign struct {
	Segment  model.ContactSegment  `json:"segment"`
	Template model.MessageTemplate `json:"template"`
	Messages []Message             `json:"messages"`
}

// WhatsAppLink builds a wa.me link. Non-digits are stripped from phone and
// the text parameter is omitted when text is empty.
func WhatsAppLink(phone, text string) string {
	link := "https://wa.me/" + nonDigits.ReplaceAllString(phone, "")
	if text != "" {
		link += "?text=" + strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	}
	return link
}

// Build prepares a message per member, in member order.
func Build(segment *model.ContactSegment, template *model.MessageTemplate, members []model.Contact) (*Campaign, error) {
	if segment == nil || template == nil {
		return nil, ErrSelectionRequired
	}
	msgs := make([]Message, 0, len(members))
	for _, c := range members {
		msgs = append(msgs, Message{
			ContactID: c.ID,
			Name:      c.Name,
			Phone:     c.Phone,
			Link:      WhatsAppLink(c.Phone, template.Content),
		})
	}
	return &Campaign{Segment: *segment, Template: *template, Messages: msgs}, nil
}
