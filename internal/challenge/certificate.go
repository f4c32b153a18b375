package challenge

import (
	"fmt"
	"strings"
	"time"

	"github.com/2beens/challenge45/internal/plan"
	"github.com/2beens/challenge45/internal/profiles"
)

const shareDescription = "Join the challenge and start your own transformation journey."

type Certificate struct {
	Name            string       `json:"name"`
	Routine         plan.Routine `json:"routine"`
	CompletionDate  string       `json:"completionDate"`
	CertificateID   string       `json:"certificateId"`
	ReferenceNumber string       `json:"referenceNumber"`
	ShareURL        string       `json:"shareUrl"`
}

// newCertificate derives the printed identifiers from the user id,
// so a certificate is reproducible without storing it.
func newCertificate(p *profiles.Profile, siteURL string, now time.Time) *Certificate {
	id := p.ID.String()
	completedAt := now
	if p.LastCompletedDay != nil {
		completedAt = *p.LastCompletedDay
	}

	return &Certificate{
		Name:            p.DisplayName(),
		Routine:         p.Routine,
		CompletionDate:  completedAt.UTC().Format("January 2, 2006"),
		CertificateID:   fmt.Sprintf("UC-45DC-%s-%s", id[0:8], id[9:13]),
		ReferenceNumber: fmt.Sprintf("CHLG-00%d-%s", p.CurrentStreak, id[24:28]),
		ShareURL:        shareURL(siteURL, id),
	}
}

type SharePreview struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	URL         string `json:"url"`
}

func newSharePreview(p *profiles.Profile, siteURL string) *SharePreview {
	name := p.Name
	if name == "" {
		name = "A Challenger"
	}
	id := p.ID.String()
	return &SharePreview{
		Title:       fmt.Sprintf("%s Completed the 45-Day Fitness Challenge!", name),
		Description: shareDescription,
		ImageURL:    fmt.Sprintf("%s/api/og/%s", strings.TrimSuffix(siteURL, "/"), id),
		URL:         shareURL(siteURL, id),
	}
}

func shareURL(siteURL, id string) string {
	return fmt.Sprintf("%s/share/%s", strings.TrimSuffix(siteURL, "/"), id)
}
