package scanner

import (
	"sort"
	"strings"
)

// Keyword tables for classifying inbound employer email. All matching is
// case-insensitive substring search over the extracted plain text.

var invitationKeywords = []string{
	"interview", "schedule a call", "next round", "next stage",
	"move forward", "meet the team", "onsite", "on-site",
	"technical assessment", "coding challenge", "take-home",
	"panel interview", "book a time", "availability",
	"would love to chat", "video call", "zoom", "google meet",
}

var phoneScreenKeywords = []string{
	"phone screen", "phone screening", "initial call", "intro call",
	"recruiter call", "hr call", "preliminary interview", "quick call",
	"brief call",
}

var rejectionKeywords = []string{
	"unfortunately", "we regret", "not moving forward",
	"decided to pursue other candidates", "other candidates",
	"not selected", "position has been filled", "will not be proceeding",
	"unable to offer", "best of luck",
}

var followUpKeywords = []string{
	"thank you for applying", "received your application",
	"application is under review", "we will be in touch",
	"status update", "following up",
}

// interviewTypePatterns map an interview type label to its trigger
// phrases, checked in a fixed order so technical wins over generic ones.
var interviewTypePatterns = []struct {
	label    string
	keywords []string
}{
	{"technical", []string{
		"technical interview", "coding interview", "coding challenge",
		"algorithm", "data structure", "system design", "pair programming",
		"whiteboard", "leetcode", "hackerrank", "codility",
	}},
	{"behavioral", []string{
		"behavioral interview", "cultural fit", "team fit", "values",
		"tell me about", "describe a time",
	}},
	{"phone_screen", []string{
		"phone screen", "initial call", "recruiter call", "hr call",
	}},
	{"final", []string{
		"final round", "final interview", "onsite", "on-site",
	}},
}

// Classification is the detector's verdict for one email.
type Classification struct {
	ResponseType  string  // interview_invitation, phone_screen, rejection, follow_up or ""
	InterviewType string  // set for invitation-like emails
	Confidence    float64 // share of keyword groups that matched, in [0, 1]
	Matched       []string
}

// Classify inspects subject and body text and returns the best-effort
// response type. Input is untrusted free text; an unrecognized email
// yields an empty ResponseType.
func Classify(subject, body string) Classification {
	text := strings.ToLower(subject + "\n" + body)

	// rejection phrasing beats invitation phrasing: rejection emails
	// routinely mention "interview" while declining one
	if matched := matchAny(text, rejectionKeywords); len(matched) > 0 {
		return Classification{
			ResponseType: "rejection",
			Confidence:   score(len(matched), len(rejectionKeywords)),
			Matched:      matched,
		}
	}

	if matched := matchAny(text, phoneScreenKeywords); len(matched) > 0 {
		return Classification{
			ResponseType:  "phone_screen",
			InterviewType: "phone_screen",
			Confidence:    score(len(matched), len(phoneScreenKeywords)),
			Matched:       matched,
		}
	}

	if matched := matchAny(text, invitationKeywords); len(matched) > 0 {
		return Classification{
			ResponseType:  "interview_invitation",
			InterviewType: detectInterviewType(text),
			Confidence:    score(len(matched), len(invitationKeywords)),
			Matched:       matched,
		}
	}

	if matched := matchAny(text, followUpKeywords); len(matched) > 0 {
		return Classification{
			ResponseType: "follow_up",
			Confidence:   score(len(matched), len(followUpKeywords)),
			Matched:      matched,
		}
	}

	return Classification{}
}

func detectInterviewType(text string) string {
	for _, p := range interviewTypePatterns {
		if len(matchAny(text, p.keywords)) > 0 {
			return p.label
		}
	}

	return "general"
}

func matchAny(text string, keywords []string) []string {
	var matched []string
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			matched = append(matched, kw)
		}
	}
	sort.Strings(matched)

	return matched
}

// score maps a match count to a bounded confidence. A single keyword hit
// is already meaningful, so the floor is deliberately high.
func score(matches, vocabulary int) float64 {
	if vocabulary == 0 {
		return 0
	}
	s := 0.5 + float64(matches)/float64(vocabulary)
	if s > 1 {
		s = 1
	}

	return s
}
