package model

// Contact is a person the card owner met. Tag doubles as the name of the
// segment the contact belongs to.
type Contact struct {
	ID          string `json:"id"`
	OwnerID     string `json:"ownerId"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	AddedAt     string `json:"addedAt"`
	LastMeeting string `json:"lastMeeting,omitempty"`
	Notes       string `json:"notes,omitempty"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
	LinkedIn    string `json:"linkedin,omitempty"`
	Twitter     string `json:"twitter,omitempty"`
	Tag         string `json:"tag,omitempty"`
}

// ContactInput is the payload for adding or editing a contact.
type ContactInput struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone"`
	LastMeeting string `json:"lastMeeting"`
	Notes       string `json:"notes"`
	AvatarURL   string `json:"avatarUrl"`
	LinkedIn    string `json:"linkedin"`
	Twitter     string `json:"twitter"`
	Tag         string `json:"tag"`
}

// Apply copies the editable fields onto contact.
func (in ContactInput) Apply(contact *Contact) {
	contact.Name = in.Name
	contact.Email = in.Email
	contact.Phone = in.Phone
	contact.LastMeeting = in.LastMeeting
	contact.Notes = in.Notes
	contact.AvatarURL = in.AvatarURL
	contact.LinkedIn = in.LinkedIn
	contact.Twitter = in.Twitter
	contact.Tag = in.Tag
}

// ContactSegment groups contacts whose Tag equals Name.
type ContactSegment struct {
	ID          string `json:"id"`
	OwnerID     string `json:"ownerId"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description,omitempty"`
}

type SegmentInput struct {
	Name        string `json:"name" validate:"required"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// TemplateCategory classifies message templates.
type TemplateCategory string

const (
	CategoryGreeting TemplateCategory = "greeting"
	CategoryFollowUp TemplateCategory = "follow-up"
	CategoryHoliday  TemplateCategory = "holiday"
	CategoryCustom   TemplateCategory = "custom"
)

type MessageTemplate struct {
	ID       string           `json:"id"`
	OwnerID  string           `json:"ownerId"`
	Title    string           `json:"title"`
	Content  string           `json:"content"`
	Category TemplateCategory `json:"category"`
}

type TemplateInput struct {
	Title    string           `json:"title" validate:"required"`
	Content  string           `json:"content" validate:"required"`
	Category TemplateCategory `json:"category" validate:"required,oneof=greeting follow-up holiday custom"`
}
