package services

import "github.com/syncapp/sync-backend/internal/models"

// Question banks for the prompt-driven game types. Tic-tac-toe has no
// prompts; its board lives in its own document.
var gameQuestionBanks = map[string][]models.GameQuestion{
	"question": {
		{Text: "What was your first impression of me?"},
		{Text: "What's a small thing I do that makes you smile?"},
		{Text: "Where would you want us to travel next?"},
		{Text: "What's one thing you'd like us to try together?"},
		{Text: "What song reminds you of us?"},
	},
	"trivia": {
		{Text: "What's my favorite food?"},
		{Text: "What's my biggest pet peeve?"},
		{Text: "What was the name of my first pet?"},
		{Text: "What's my dream job?"},
		{Text: "Which movie have I rewatched the most?"},
	},
	"would-you-rather": {
		{Text: "Would you rather have a beach vacation or a mountain getaway?", Options: []string{"Beach", "Mountains"}},
		{Text: "Would you rather cook together or order takeout?", Options: []string{"Cook together", "Order takeout"}},
		{Text: "Would you rather relive our first date or fast-forward to our next trip?", Options: []string{"First date", "Next trip"}},
		{Text: "Would you rather stay in with a movie or go out dancing?", Options: []string{"Movie night", "Go dancing"}},
		{Text: "Would you rather give up coffee or give up dessert?", Options: []string{"Coffee", "Dessert"}},
	},
	"this-or-that": {
		{Text: "Sunrise or sunset?", Options: []string{"Sunrise", "Sunset"}},
		{Text: "Sweet or savory?", Options: []string{"Sweet", "Savory"}},
		{Text: "City or countryside?", Options: []string{"City", "Countryside"}},
		{Text: "Early bird or night owl?", Options: []string{"Early bird", "Night owl"}},
		{Text: "Texting or calling?", Options: []string{"Texting", "Calling"}},
	},
}

// questionsFor returns a fresh copy of the bank so sessions never share
// answer maps.
func questionsFor(gameType string) []models.GameQuestion {
	bank, ok := gameQuestionBanks[gameType]
	if !ok {
		return nil
	}

	questions := make([]models.GameQuestion, len(bank))
	for i, q := range bank {
		questions[i] = models.GameQuestion{
			Text:    q.Text,
			Options: q.Options,
			Answers: make(map[string]string),
		}
	}
	return questions
}
