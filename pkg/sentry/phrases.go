package sentry

// defaultWelcomePhrases complete the sentence
// "Visitor approaching. <name> is <phrase>".
var defaultWelcomePhrases = []string{
	"approaching the perimeter",
	"at the gates",
	"nearby",
	"closing in",
	"within range",
	"paying a visit",
}

func (this *Classifier) welcomePhrase() string {
	phrases := this.conf.WelcomePhrases
	if len(phrases) == 0 {
		phrases = defaultWelcomePhrases
	}
	return phrases[this.randIntN(len(phrases))]
}
