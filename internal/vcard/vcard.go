// Package vcard renders cards, contacts and user profiles as vCard 3.0 text.
package vcard

import (
	"regexp"
	"strings"

	"github.com/neethishnk/hawkcards/internal/model"
)

// ContentType is the media type for downloads.
const ContentType = "text/vcard;charset=utf-8"

var whitespace = regexp.MustCompile(`\s+`)

func render(lines []string) string {
	all := make([]string, 0, len(lines)+3)
	all = append(all, "BEGIN:VCARD", "VERSION:3.0")
	all = append(all, lines...)
	all = append(all, "END:VCARD")
	return strings.Join(all, "\n")
}

// FromCard renders a digital card. Each field becomes one line in display
// order.
func FromCard(card model.DigitalCard) string {
	lines := []string{
		"FN:" + card.FirstName + " " + card.LastName,
		"N:" + card.LastName + ";" + card.FirstName + ";;;",
		"ORG:" + card.Company,
		"TITLE:" + card.JobTitle,
	}
	for _, f := range card.Fields {
		switch f.Type {
		case model.FieldPhone:
			lines = append(lines, "TEL;TYPE=CELL:"+f.Value)
		case model.FieldEmail:
			lines = append(lines, "EMAIL;TYPE=INTERNET:"+f.Value)
		case model.FieldWebsite:
			lines = append(lines, "URL:"+f.Value)
		default:
			lines = append(lines, "URL;TYPE="+string(f.Type)+":"+f.Value)
		}
	}
	return render(lines)
}

// CardFilename is <first>_<last>.vcf.
func CardFilename(card model.DigitalCard) string {
	return card.FirstName + "_" + card.LastName + ".vcf"
}

// FromContact renders an address-book contact. Newlines in notes are
// escaped as a literal \n.
func FromContact(c model.Contact) string {
	return render([]string{
		"FN:" + c.Name,
		"TEL;TYPE=CELL:" + c.Phone,
		"EMAIL;TYPE=INTERNET:" + c.Email,
		"URL;TYPE=Linkedin:" + c.LinkedIn,
		"CATEGORIES:" + c.Tag,
		"NOTE:" + strings.ReplaceAll(c.Notes, "\n", `\n`),
	})
}

// FromUser renders an employee profile for the admin console. The first
// word of the name is the given name, the rest the family name.
func FromUser(u model.User, org string) string {
	parts := strings.Split(u.Name, " ")
	first, last := parts[0], ""
	if len(parts) > 1 {
		last = strings.Join(parts[1:], " ")
	}
	return render([]string{
		"FN:" + u.Name,
		"N:" + last + ";" + first + ";;;",
		"ORG:" + org + ";" + u.Department,
		"TITLE:" + u.Position,
		"TEL;TYPE=WORK,VOICE:" + u.Phone,
		"EMAIL;TYPE=WORK:" + u.Email,
		"ROLE:" + string(u.Role),
	})
}

// ContactFilename is used for both contacts and user profiles.
func ContactFilename(name string) string {
	return whitespace.ReplaceAllString(name, "_") + "_contact.vcf"
}
