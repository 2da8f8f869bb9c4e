package bot

import (
	"regexp"
	"strings"
)

// MessageIntent classifies an inbound text into one of the fixed handlers.
type MessageIntent int

const (
	IntentUnknown MessageIntent = iota
	IntentStart
	IntentSpeakers
	IntentNetworking
	IntentInformation
	IntentAgenda
	IntentSignIn
	IntentAuthCode
)

func (i MessageIntent) String() string {
	switch i {
	case IntentStart:
		return "start"
	case IntentSpeakers:
		return "speakers"
	case IntentNetworking:
		return "networking"
	case IntentInformation:
		return "information"
	case IntentAgenda:
		return "agenda"
	case IntentSignIn:
		return "sign_in"
	case IntentAuthCode:
		return "auth_code"
	default:
		return "unknown"
	}
}

var codePattern = regexp.MustCompile(`^\d{4}$`)

// ClassifyMessage maps inbound text to an intent. Priority: the /start
// command, then exact menu labels, then a strict 4-digit passcode. Anything
// else is IntentUnknown and stays unanswered.
func ClassifyMessage(isCommand bool, command, text string) MessageIntent {
	if isCommand {
		if command == "start" {
			return IntentStart
		}
		return IntentUnknown
	}

	switch strings.TrimSpace(text) {
	case "Speakers":
		return IntentSpeakers
	case "Networking":
		return IntentNetworking
	case "Information":
		return IntentInformation
	case "Agenda":
		return IntentAgenda
	case "Sign In":
		return IntentSignIn
	}

	if codePattern.MatchString(strings.TrimSpace(text)) {
		return IntentAuthCode
	}

	return IntentUnknown
}
