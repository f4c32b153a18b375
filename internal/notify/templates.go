package notify

import (
	"fmt"
	"html"
)

type message struct {
	Subject string
	HTML    string
}

func render(event Event) (message, error) {
	name := html.EscapeString(event.UserName)
	if name == "" {
		name = "there"
	}

	switch event.Kind {
	case KindReset:
		return message{
			Subject: "Your 45-Day Challenge has been Reset",
			HTML: fmt.Sprintf(
				"Hi %s,<br><br>You missed a day, and your challenge progress has been reset. "+
					"The key to transformation is consistency. Start over strong today!",
				name,
			),
		}, nil
	case KindMilestone:
		return message{
			Subject: fmt.Sprintf("You just completed Day %d!", event.StreakValue),
			HTML: fmt.Sprintf(
				"Hi %s,<br><br>Incredible work! You've just crushed Day %d of the 45-Day Challenge. Keep that fire going!",
				name, event.StreakValue,
			),
		}, nil
	case KindReminder:
		return message{
			Subject: "Friendly reminder for your challenge!",
			HTML: fmt.Sprintf(
				"Hi %s,<br><br>Just a heads-up that you still need to complete your task for Day %d. Don't lose that streak!",
				name, event.StreakValue+1,
			),
		}, nil
	default:
		return message{}, fmt.Errorf("%w: %q", ErrUnknownKind, event.Kind)
	}
}
