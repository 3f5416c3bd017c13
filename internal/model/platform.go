package model

import (
	"net/url"
	"strings"
)

// Platform identifies a social/content site a lead can originate from.
type Platform string

const (
	PlatformXiaohongshu Platform = "xiaohongshu"
	PlatformLinkedIn    Platform = "linkedin"
	PlatformX           Platform = "x"
	PlatformTelegram    Platform = "telegram"
	PlatformReddit      Platform = "reddit"
	PlatformFacebook    Platform = "facebook"
	PlatformInstagram   Platform = "instagram"
)

// DefaultPlatforms is used when a scan request does not name any platform.
var DefaultPlatforms = []Platform{PlatformLinkedIn, PlatformX, PlatformReddit}

// platformAliases maps common alternative spellings to canonical platforms.
var platformAliases = map[string]Platform{
	"twitter":     PlatformX,
	"x.com":       PlatformX,
	"xhs":         PlatformXiaohongshu,
	"rednote":     PlatformXiaohongshu,
	"红书":          PlatformXiaohongshu,
	"小红书":         PlatformXiaohongshu,
	"fb":          PlatformFacebook,
	"ig":          PlatformInstagram,
	"insta":       PlatformInstagram,
	"tg":          PlatformTelegram,
	"reddit":      PlatformReddit,
	"linkedin":    PlatformLinkedIn,
	"facebook":    PlatformFacebook,
	"instagram":   PlatformInstagram,
	"telegram":    PlatformTelegram,
	"x":           PlatformX,
	"xiaohongshu": PlatformXiaohongshu,
}

// NormalizePlatform maps a free-form platform string to the canonical enum.
// The second return value reports whether the input was recognized.
func NormalizePlatform(raw string) (Platform, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if p, ok := platformAliases[key]; ok {
		return p, true
	}
	return "", false
}

// Domain returns the site domain used in broad search queries.
func (p Platform) Domain() string {
	switch p {
	case PlatformTelegram:
		return "t.me"
	case PlatformX:
		return "x.com"
	default:
		return string(p) + ".com"
	}
}

// SearchScope returns the path-scoped site restriction used for the first,
// precise query against each platform. Scoping to post paths filters out
// profile and landing pages.
func (p Platform) SearchScope() string {
	switch p {
	case PlatformLinkedIn:
		return "linkedin.com/posts"
	case PlatformReddit:
		return "reddit.com/r"
	case PlatformXiaohongshu:
		return "xiaohongshu.com/explore"
	case PlatformTelegram:
		return "t.me/s"
	default:
		return p.Domain()
	}
}

// DiscoveryURL returns a live topic/discovery page on the platform for the
// given term. Used for synthesized placeholder records, where the link must
// stay alive without pointing at a raw search-results page.
func (p Platform) DiscoveryURL(term string) string {
	slug := hashtagSlug(term)
	switch p {
	case PlatformX:
		return "https://x.com/hashtag/" + slug
	case PlatformLinkedIn:
		return "https://www.linkedin.com/feed/hashtag/" + slug + "/"
	case PlatformInstagram:
		return "https://www.instagram.com/explore/tags/" + slug + "/"
	case PlatformFacebook:
		return "https://www.facebook.com/hashtag/" + slug
	case PlatformReddit:
		return "https://www.reddit.com/t/" + slug + "/"
	case PlatformTelegram:
		return "https://t.me/s/" + slug
	default:
		return "https://www.xiaohongshu.com/explore?channel=" + url.QueryEscape(term)
	}
}

func hashtagSlug(term string) string {
	slug := strings.ToLower(strings.TrimSpace(term))
	slug = strings.Join(strings.Fields(slug), "")
	return url.PathEscape(slug)
}
