package service

import (
	"fmt"
	"strings"
	"time"
)

// AnnounceService builds the periodic agenda reminder sent to authorized
// attendees.
type AnnounceService struct{}

func NewAnnounceService() *AnnounceService {
	return &AnnounceService{}
}

// AgendaDigest renders the reminder text for the given moment.
func (s *AnnounceService) AgendaDigest(now time.Time) string {
	var builder strings.Builder
	builder.WriteString("📅 <b>Event reminder</b>\n")
	builder.WriteString(fmt.Sprintf("🗓 %s\n\n", now.Format("02.01.2006")))
	builder.WriteString("Here is the event agenda...\n")
	builder.WriteString("Check the Speakers and Networking sections for updates.")
	return builder.String()
}
