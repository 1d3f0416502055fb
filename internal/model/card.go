package model

// CardTheme is the visual layout of a digital card.
type CardTheme string

const (
	ThemeClassic CardTheme = "classic"
	ThemeModern  CardTheme = "modern"
	ThemeSleek   CardTheme = "sleek"
	ThemeFlat    CardTheme = "flat"
)

// FieldType is the kind of contact method a SocialField holds.
type FieldType string

const (
	FieldEmail     FieldType = "email"
	FieldPhone     FieldType = "phone"
	FieldWebsite   FieldType = "website"
	FieldLinkedIn  FieldType = "linkedin"
	FieldTwitter   FieldType = "twitter"
	FieldInstagram FieldType = "instagram"
	FieldGitHub    FieldType = "github"
	FieldYouTube   FieldType = "youtube"
	FieldCustom    FieldType = "custom"
)

// SocialField is one contact method on a card. Values are free text.
type SocialField struct {
	ID    string    `json:"id"`
	Type  FieldType `json:"type" validate:"required,oneof=email phone website linkedin twitter instagram github youtube custom"`
	Label string    `json:"label,omitempty"`
	Value string    `json:"value"`
}

// DigitalCard is a shareable profile. Fields keep display order.
type DigitalCard struct {
	ID            string        `json:"id"`
	UserID        string        `json:"userId"`
	Title         string        `json:"title"`
	Theme         CardTheme     `json:"theme"`
	Color         string        `json:"color"`
	Prefix        string        `json:"prefix,omitempty"`
	FirstName     string        `json:"firstName"`
	MiddleName    string        `json:"middleName,omitempty"`
	LastName      string        `json:"lastName"`
	Suffix        string        `json:"suffix,omitempty"`
	PreferredName string        `json:"preferredName,omitempty"`
	MaidenName    string        `json:"maidenName,omitempty"`
	Pronouns      string        `json:"pronouns,omitempty"`
	JobTitle      string        `json:"jobTitle"`
	Department    string        `json:"department,omitempty"`
	Company       string        `json:"company"`
	Headline      string        `json:"headline,omitempty"`
	Fields        []SocialField `json:"fields"`
	AvatarURL     string        `json:"avatarUrl,omitempty"`
	CoverImageURL string        `json:"coverImageUrl,omitempty"`
	Views         int           `json:"views"`
	UniqueViews   int           `json:"uniqueViews"`
	Saves         int           `json:"saves"`
}

// CardInput carries the editable part of a card. Owner and counters are
// assigned by the store.
type CardInput struct {
	Title         string        `json:"title" validate:"required"`
	Theme         CardTheme     `json:"theme" validate:"required,oneof=classic modern sleek flat"`
	Color         string        `json:"color"`
	Prefix        string        `json:"prefix"`
	FirstName     string        `json:"firstName" validate:"required"`
	MiddleName    string        `json:"middleName"`
	LastName      string        `json:"lastName"`
	Suffix        string        `json:"suffix"`
	PreferredName string        `json:"preferredName"`
	MaidenName    string        `json:"maidenName"`
	Pronouns      string        `json:"pronouns"`
	JobTitle      string        `json:"jobTitle"`
	Department    string        `json:"department"`
	Company       string        `json:"company"`
	Headline      string        `json:"headline"`
	Fields        []SocialField `json:"fields" validate:"dive"`
	AvatarURL     string        `json:"avatarUrl"`
	CoverImageURL string        `json:"coverImageUrl"`
}

// Apply copies the editable fields onto card, leaving id, owner and
// counters untouched.
func (in CardInput) Apply(card *DigitalCard) {
	card.Title = in.Title
	card.Theme = in.Theme
	card.Color = in.Color
	card.Prefix = in.Prefix
	card.FirstName = in.FirstName
	card.MiddleName = in.MiddleName
	card.LastName = in.LastName
	card.Suffix = in.Suffix
	card.PreferredName = in.PreferredName
	card.MaidenName = in.MaidenName
	card.Pronouns = in.Pronouns
	card.JobTitle = in.JobTitle
	card.Department = in.Department
	card.Company = in.Company
	card.Headline = in.Headline
	card.Fields = append([]SocialField(nil), in.Fields...)
	card.AvatarURL = in.AvatarURL
	card.CoverImageURL = in.CoverImageURL
	if card.Fields == nil {
		card.Fields = []SocialField{}
	}
}
