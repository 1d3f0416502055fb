package store

import (
	"time"

	"github.com/neethishnk/hawkcards/internal/model"
)

// Demo data applied when a collection has never been written.

func seedUsers(now time.Time) []model.User {
	issued := formatTime(now)
	return []model.User{
		{
			ID:         "admin-1",
			Name:       "Sarah Connor",
			Email:      "admin@hawkforce.ai",
			Role:       model.RoleAdmin,
			Position:   "Chief Security Officer",
			Department: "Security",
			Phone:      "+1 (555) 010-9988",
			CardStatus: model.CardStatusActive,
			AvatarURL:  "https://picsum.photos/200/200?random=1",
			IssuedAt:   issued,
		},
		{
			ID:         "user-1",
			Name:       "John Anderson",
			Email:      "john.anderson@hawkforce.ai",
			Role:       model.RoleUser,
			Position:   "Software Engineer",
			Department: "Engineering",
			Phone:      "+1 (555) 019-2233",
			CardStatus: model.CardStatusActive,
			AvatarURL:  "https://picsum.photos/200/200?random=2",
			IssuedAt:   issued,
		},
	}
}

func seedContacts(now time.Time) []model.Contact {
	ago := func(d time.Duration) string { return formatTime(now.Add(-d)) }
	day := 24 * time.Hour
	return []model.Contact{
		{
			ID:          "c-1",
			OwnerID:     "user-1",
			Name:        "Thomas Mueller",
			Email:       "thomas.m@example.com",
			Phone:       "491522334455",
			AddedAt:     ago(7 * day),
			LastMeeting: ago(day),
			Notes:       "Interested in enterprise security stack. Follow up next Tuesday.",
			AvatarURL:   "https://picsum.photos/200/200?random=10",
			LinkedIn:    "https://linkedin.com/in/thomasmueller",
			Tag:         "Work",
		},
		{
			ID:          "c-2",
			OwnerID:     "user-1",
			Name:        "Emily Watson",
			Email:       "emily.w@techcorp.com",
			Phone:       "15550123456",
			AddedAt:     ago(14 * day),
			LastMeeting: ago(5 * day),
			Notes:       "Discussed potential partnership for Q3. Needs demo.",
			AvatarURL:   "https://picsum.photos/200/200?random=11",
			LinkedIn:    "https://linkedin.com/in/emilywatson",
			Tag:         "VIP",
		},
	}
}

func seedSegments(time.Time) []model.ContactSegment {
	return []model.ContactSegment{
		{ID: "seg-1", OwnerID: "user-1", Name: "Work", Color: "#3b82f6", Description: "Business contacts and clients"},
		{ID: "seg-2", OwnerID: "user-1", Name: "VIP", Color: "#8b5cf6", Description: "Key decision makers"},
	}
}

func seedTemplates(time.Time) []model.MessageTemplate {
	return []model.MessageTemplate{
		{
			ID:       "tm-1",
			OwnerID:  "user-1",
			Title:    "New Year Greeting",
			Category: model.CategoryHoliday,
			Content:  "Happy New Year! Wishing you a prosperous year ahead filled with success and joy.",
		},
		{
			ID:       "tm-2",
			OwnerID:  "user-1",
			Title:    "Follow-up",
			Category: model.CategoryFollowUp,
			Content:  "Hi! It was great connecting with you recently. Would love to catch up and discuss our potential collaboration further.",
		},
	}
}

func seedLogs(now time.Time) []model.LogEntry {
	return []model.LogEntry{
		{ID: "log-1", Action: model.ActionSystemInit, Details: "System initialized", Timestamp: formatTime(now.Add(-10000 * time.Second))},
	}
}

func seedCards(time.Time) []model.DigitalCard {
	return []model.DigitalCard{
		{
			ID:         "card-1",
			UserID:     "user-1",
			Title:      "Work",
			Theme:      model.ThemeModern,
			Color:      "#3b82f6",
			FirstName:  "John",
			LastName:   "Anderson",
			JobTitle:   "Software Engineer",
			Company:    "Hawkforce AI",
			Department: "Engineering",
			Fields: []model.SocialField{
				{ID: "f1", Type: model.FieldEmail, Value: "john.anderson@hawkforce.ai", Label: "Work Email"},
				{ID: "f2", Type: model.FieldPhone, Value: "+1 (555) 019-2233", Label: "Work Phone"},
			},
			AvatarURL:   "https://picsum.photos/200/200?random=2",
			Views:       120,
			UniqueViews: 85,
			Saves:       12,
		},
	}
}
