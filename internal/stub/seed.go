package stub

import (
	"time"

	"github.com/google/uuid"

	"github.com/noamzr/recdeck/internal/candidate"
	"github.com/noamzr/recdeck/internal/cvapi"
)

// seedRecords returns the sample pipeline the stub boots with: candidates
// spread across every status, one soft-deleted, with enough variety in
// campaigns, countries, and scores to exercise each filter.
func seedRecords(now time.Time) []cvapi.Record {
	day := func(offset int) string {
		return now.AddDate(0, 0, -offset).UTC().Format(time.RFC3339)
	}

	records := []cvapi.Record{
		{
			CurrentStatus: candidate.StatusReadyForRecruit.Wire(),
			CreatedAt:     day(14),
			UpdatedAt:     day(9),
			StatusHistory: []cvapi.StatusHistoryEntry{
				{Status: "submitted", Timestamp: day(14), Note: "CV received from LinkedIn"},
				{Status: "bot_interview", Timestamp: day(13), Note: "WhatsApp interview started"},
				{Status: "ready_for_recruit", Timestamp: day(9), Note: "All information collected"},
			},
			KnownData: cvapi.KnownData{
				Name:            "Sarah Mitchell",
				LatinName:       "Sarah Mitchell",
				HebrewName:      "שרה מיטשל",
				Email:           "sarah.mitchell@email.com",
				PhoneNumber:     "+972-54-123-4567",
				Age:             "34",
				Nationality:     "Israeli / German",
				Campaign:        "LinkedIn Campaign Q4",
				JobType:         "headquarters_staff",
				MatchScore:      "95",
				ClassExplain:    "Headquarters Staff",
				EnglishLevel:    "fluent",
				CanTravelEurope: "yes",
				CanVisitIsrael:  "yes",
				LivesInEurope:   "yes",
				NativeIsraeli:   "yes",
				SkillsSummary: "Experienced professional with strong background in " +
					"international operations. Israeli citizen currently residing in Germany.",
				RemembersJobApplication: "yes",
				Notes:                   "Excellent candidate for HQ position. Strong cultural fit.",
			},
		},
		{
			CurrentStatus: candidate.StatusReadyForRecruit.Wire(),
			CreatedAt:     day(11),
			UpdatedAt:     day(8),
			StatusHistory: []cvapi.StatusHistoryEntry{
				{Status: "submitted", Timestamp: day(11), Note: "Applied via Facebook"},
				{Status: "bot_interview", Timestamp: day(10), Note: "Completed questionnaire"},
				{Status: "ready_for_recruit", Timestamp: day(8), Note: "All parameters verified"},
			},
			KnownData: cvapi.KnownData{
				Name:           "Yossi Cohen",
				LatinName:      "Yossi Cohen",
				HebrewName:     "יוסי כהן",
				Email:          "yossi.cohen@email.com",
				PhoneNumber:    "+972-52-234-5678",
				Age:            "32",
				Nationality:    "Israeli",
				Campaign:       "Facebook Tech Jobs",
				JobType:        "operational_worker",
				MatchScore:     "94",
				ClassExplain:   "Operational Worker (Israel)",
				EnglishLevel:   "fluent",
				CanVisitIsrael: "yes",
				NativeIsraeli:  "yes",
				SkillsSummary: "Highly suitable operational worker. Freelancer with excellent " +
					"availability, owns both car and motorcycle.",
				RemembersJobApplication: "yes",
			},
		},
		{
			CurrentStatus: candidate.StatusBotInterview.Wire(),
			CreatedAt:     day(7),
			UpdatedAt:     day(6),
			StatusHistory: []cvapi.StatusHistoryEntry{
				{Status: "submitted", Timestamp: day(7), Note: "New application via X campaign"},
				{Status: "bot_interview", Timestamp: day(6), Note: "WhatsApp interview in progress"},
			},
			KnownData: cvapi.KnownData{
				Name:            "Emma Rodriguez",
				LatinName:       "Emma Rodriguez",
				Email:           "emma.rodriguez@email.com",
				PhoneNumber:     "+34-612-345-678",
				Age:             "36",
				Nationality:     "Spanish",
				Campaign:        "X (Twitter) Tech Hiring",
				JobType:         "training_instruction",
				MatchScore:      "91",
				ClassExplain:    "Training/Instruction",
				EnglishLevel:    "fluent",
				CanTravelEurope: "yes",
				LivesInEurope:   "yes",
				SkillsSummary:   "Experienced trainer with a background in corporate education programs.",
			},
		},
		{
			CurrentStatus: candidate.StatusReadyForBotInterview.Wire(),
			CreatedAt:     day(9),
			UpdatedAt:     day(7),
			StatusHistory: []cvapi.StatusHistoryEntry{
				{Status: "submitted", Timestamp: day(9), Note: "Application received"},
				{Status: "ready_for_bot_interview", Timestamp: day(7), Note: "Classified - awaiting interview"},
			},
			KnownData: cvapi.KnownData{
				Name:            "Sophie Laurent",
				LatinName:       "Sophie Laurent",
				Email:           "sophie.laurent@email.com",
				PhoneNumber:     "+33-6-12-34-56-78",
				Age:             "29",
				Nationality:     "French",
				Campaign:        "LinkedIn Campaign Q4",
				JobType:         "headquarters_staff",
				MatchScore:      "84",
				ClassExplain:    "Headquarters Staff",
				EnglishLevel:    "good",
				CanTravelEurope: "yes",
				LivesInEurope:   "yes",
			},
		},
		{
			CurrentStatus: candidate.StatusSubmitted.Wire(),
			CreatedAt:     day(2),
			UpdatedAt:     day(2),
			StatusHistory: []cvapi.StatusHistoryEntry{
				{Status: "submitted", Timestamp: day(2), Note: "New submission - awaiting contact"},
			},
			KnownData: cvapi.KnownData{
				Name:        "David Levi",
				LatinName:   "David Levi",
				HebrewName:  "דוד לוי",
				Email:       "david.levi@email.com",
				PhoneNumber: "+972-50-345-6789",
				Age:         "27",
				Nationality: "Israeli",
				Campaign:    "Facebook Tech Jobs",
			},
		},
		{
			CurrentStatus: candidate.StatusReadyForRecruit.Wire(),
			IsDeleted:     true,
			CreatedAt:     day(20),
			UpdatedAt:     day(4),
			DeletedAt:     day(4),
			StatusHistory: []cvapi.StatusHistoryEntry{
				{Status: "submitted", Timestamp: day(20), Note: "CV submitted"},
				{Status: "ready_for_recruit", Timestamp: day(15), Note: "All data collected"},
			},
			KnownData: cvapi.KnownData{
				Name:         "Thomas Anderson",
				LatinName:    "Thomas Anderson",
				Email:        "thomas.anderson@email.com",
				PhoneNumber:  "+44-7700-900123",
				Age:          "41",
				Nationality:  "British",
				Campaign:     "X (Twitter) Tech Hiring",
				JobType:      "sales",
				MatchScore:   "88",
				ClassExplain: "Sales",
				EnglishLevel: "native",
			},
		},
	}

	for i := range records {
		records[i].ID = uuid.NewString()
	}
	return records
}
