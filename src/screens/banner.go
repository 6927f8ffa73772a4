package screens

import "time"

// BannerKind is the colour of a dashboard banner
type BannerKind string

const (
	BannerSuccess BannerKind = "success"
	BannerError   BannerKind = "error"
)

// Banner is a transient status message
type Banner struct {
	Kind      BannerKind `json:"type"`
	Text      string     `json:"text"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// bannerSlot holds at most one banner; a newer banner replaces the older one
type bannerSlot struct {
	banner *Banner
}

func (s *bannerSlot) show(kind BannerKind, text string, now time.Time, ttl time.Duration) {
	s.banner = &Banner{Kind: kind, Text: text, ExpiresAt: now.Add(ttl)}
}

// current returns the banner while it is still visible
func (s *bannerSlot) current(now time.Time) *Banner {
	if s.banner == nil {
		return nil
	}
	if !now.Before(s.banner.ExpiresAt) {
		s.banner = nil
		return nil
	}
	b := *s.banner
	return &b
}
