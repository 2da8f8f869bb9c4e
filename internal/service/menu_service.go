package service

// Section is a named menu destination.
type Section int

const (
	SectionSpeakers Section = iota
	SectionNetworking
	SectionInformation
	SectionAgenda
	SectionSignIn
)

// Label returns the button text shown on the reply keyboard.
func (s Section) Label() string {
	switch s {
	case SectionSpeakers:
		return "Speakers"
	case SectionNetworking:
		return "Networking"
	case SectionInformation:
		return "Information"
	case SectionAgenda:
		return "Agenda"
	case SectionSignIn:
		return "Sign In"
	default:
		return ""
	}
}

const (
	deniedReply           = "You need to be authorized to access this section."
	deniedNetworkingReply = "You need to be authorized to access Networking."
)

// MenuService decides which sections a user may read.
type MenuService struct{}

func NewMenuService() *MenuService {
	return &MenuService{}
}

// VisibleSections lists the menu entries to render. The keyboard shows every
// option regardless of authorization; gating happens when a section is
// actually selected.
func (m *MenuService) VisibleSections(isAuthorized bool) []Section {
	return []Section{SectionSpeakers, SectionNetworking, SectionInformation, SectionAgenda, SectionSignIn}
}

// CanAnswer reports whether the section content may be shown to the user.
func (m *MenuService) CanAnswer(section Section, isAuthorized bool) bool {
	switch section {
	case SectionSpeakers, SectionNetworking:
		return isAuthorized
	default:
		return true
	}
}

// Answer returns the content reply for a section, or the denial text when the
// user is not allowed to read it. Networking carries its own denial wording.
func (m *MenuService) Answer(section Section, isAuthorized bool) string {
	if !m.CanAnswer(section, isAuthorized) {
		if section == SectionNetworking {
			return deniedNetworkingReply
		}
		return deniedReply
	}

	switch section {
	case SectionSpeakers:
		return "List of speakers: ..."
	case SectionNetworking:
		return "Networking section: ..."
	case SectionInformation:
		return "Here is some information about the event..."
	case SectionAgenda:
		return "Here is the event agenda..."
	case SectionSignIn:
		return "Please enter your unique code to sign in:"
	default:
		return ""
	}
}
