package game

import (
	"strings"
	"text/template"
)

const rulesText = `You are playing a variant of the Swiss card game Jass called Differenzler. The game uses a 36-card Swiss-German deck and is played with 4 players.
CARD SETUP
- Suits: Schellen (bells), Eicheln (acorns), Schilten (shields), Rosen (roses)
- Ranks per suit: Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace
- Each round one suit is chosen at random as trump. Trump cards beat every non-trump card.
Trump order and points: Jack 20, Nine 14, Ace 11, King 4, Queen 3, Ten 10, Eight 0, Seven 0, Six 0.
Non-trump order and points: Ace 11, King 4, Queen 3, Jack 2, Ten 10, Nine 0, Eight 0, Seven 0, Six 0.
PLAY
- 9 tricks, one card per player per trick. The winner of a trick leads the next one.
- Follow the leading suit or play trump if you can. The trump Jack never has to follow.
- If you hold neither, play any card.
- The highest trump wins the trick, otherwise the highest card of the leading suit.
- The winner of the last trick gets a bonus of 5 points.
SCORING
- Before play everybody predicts the points they will take (0 to 157).
- The penalty is the difference between prediction and actual points, e.g. 60 predicted, 74 taken: penalty 14.
- The lowest total penalty after all rounds wins.
`

var (
	promptFuncs = template.FuncMap{
		"cards": cardsString,
		"suit": func(s Suit) string {
			if !s.Valid() {
				return "None"
			}
			return s.String()
		},
		"join": strings.Join,
	}

	guessPrompt = template.Must(template.New("guess").Funcs(promptFuncs).Parse(rulesText + `
Round {{.View.Round}} of {{.View.Rounds}}
Trump suit: {{suit .View.Trump}}
Hand: {{cards .View.Hand}}

Now guess how many points you will score this round (a number between 0 and {{.Max}}). Output the number only and do not include any other text.
`))

	cardPrompt = template.Must(template.New("card").Funcs(promptFuncs).Parse(rulesText + `
Round {{.View.Round}} of {{.View.Rounds}}
Trump suit: {{suit .View.Trump}}
Leading suit: {{suit .View.Leading}}
Hand: {{cards .View.Hand}}
Legal options: {{cards .Legal}}
Already played cards: {{cards .View.Played}}
Game history:
{{join .View.History "\n"}}

Pick the best card to play and ONLY return the card string, for example "Jack-Schilten" or "Nine-Rosen" (without the quotation marks). Do not return any other text.
`))
)

// GuessPrompt renders the text handed to an advisory agent for a guess.
func GuessPrompt(v View) (string, error) {
	var b strings.Builder
	err := guessPrompt.Execute(&b, struct {
		View View
		Max  int
	}{v, MaxGuess})
	return b.String(), err
}

// CardPrompt renders the text handed to an advisory agent for a card choice.
func CardPrompt(v View, legal []Card) (string, error) {
	var b strings.Builder
	err := cardPrompt.Execute(&b, struct {
		View  View
		Legal []Card
	}{v, legal})
	return b.String(), err
}
