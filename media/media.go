// Package media normalizes video URLs from YouTube, Instagram and TikTok and
// renders the embed markup used on post pages and in the video panel.
package media

import (
	"net/url"
	"strings"
)

// Platform names as used in the video index.
const (
	Instagram = "instagram"
	YouTube   = "youtube"
	TikTok    = "tiktok"
)

func parse(raw string) (*url.URL, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, false
	}
	return u, true
}

func host(u *url.URL) string {
	return strings.Replace(strings.ToLower(u.Hostname()), "www.", "", 1)
}

// segment returns the n-th element of path split on "/", or "".
func segment(path string, n int) string {
	parts := strings.Split(path, "/")
	if n < len(parts) {
		return parts[n]
	}
	return ""
}

// YouTubeID extracts the video id from youtu.be/<id>, youtube.com/watch?v=<id>,
// youtube.com/shorts/<id> and youtube.com/embed/<id> URLs. The m. subdomain
// is accepted. Anything else yields "".
func YouTubeID(raw string) string {
	u, ok := parse(raw)
	if !ok {
		return ""
	}
	path := u.EscapedPath()
	switch host(u) {
	case "youtu.be":
		return segment(path, 1)
	case "youtube.com", "m.youtube.com":
		switch {
		case strings.HasPrefix(path, "/shorts/"), strings.HasPrefix(path, "/embed/"):
			return segment(path, 2)
		case path == "/watch":
			return u.Query().Get("v")
		}
	}
	return ""
}

// IsInstagram reports whether raw is an absolute URL on an instagram.com host.
func IsInstagram(raw string) bool {
	u, ok := parse(raw)
	return ok && strings.Contains(strings.ToLower(u.Hostname()), "instagram.com")
}

// InstagramPermalink reduces raw to origin and path, with a trailing slash.
// Query strings and fragments such as ?igsh= share tokens are dropped.
func InstagramPermalink(raw string) string {
	u, ok := parse(raw)
	if !ok {
		return ""
	}
	path := u.EscapedPath()
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	return strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host) + path
}

// IsTikTok reports whether raw is an absolute URL on a tiktok.com host.
func IsTikTok(raw string) bool {
	u, ok := parse(raw)
	return ok && strings.Contains(strings.ToLower(u.Hostname()), "tiktok.com")
}

// TikTokID returns the path segment following "video", or "".
func TikTokID(raw string) string {
	u, ok := parse(raw)
	if !ok {
		return ""
	}
	parts := strings.Split(strings.Trim(u.EscapedPath(), "/"), "/")
	for i, p := range parts {
		if p == "video" && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}

// PlatformOf classifies raw as one of the platform constants, or "".
func PlatformOf(raw string) string {
	switch {
	case IsInstagram(raw):
		return Instagram
	case IsTikTok(raw):
		return TikTok
	case YouTubeID(raw) != "":
		return YouTube
	}
	return ""
}
