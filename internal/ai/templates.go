package ai

// defaultBanks are the compiled-in fallback question banks, used when the
// question_templates table has no bank for the requested interview type.
// The seeded banks in db/seed take precedence.
var defaultBanks = map[string][]string{
	"technical": {
		"What is your experience with the core technologies used at {company}?",
		"Walk me through how you would design a rate limiter.",
		"Describe your debugging process for an intermittent bug.",
		"How do you handle partial failures in production?",
		"What testing strategies do you use for a {position} role?",
	},
	"behavioral": {
		"Tell me about a time when you faced a significant challenge at work.",
		"Describe a situation where you had to work with a difficult team member.",
		"How do you handle tight deadlines and pressure?",
		"Tell me about a project you are particularly proud of.",
		"Why do you want to work at {company}?",
	},
	"phone_screen": {
		"Walk me through your background and what you are looking for.",
		"Why are you interested in the {position} role at {company}?",
		"What project best represents your recent work?",
		"What questions do you have about the team?",
	},
}
