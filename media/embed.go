package media

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/jimcircuit/termsite/markdown"
)

// Script URLs that turn embed blockquotes into players.
const (
	InstagramScript = "https://www.instagram.com/embed.js"
	TikTokScript    = "https://www.tiktok.com/embed.js"
)

const youtubeAllow = "accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture; web-share"

// Embed returns the player markup for raw, or "" when raw is not a
// recognized video URL.
func Embed(raw string) string {
	switch PlatformOf(raw) {
	case Instagram:
		return instagramEmbed(raw)
	case TikTok:
		return tiktokEmbed(raw)
	case YouTube:
		return youtubeEmbed(YouTubeID(raw))
	}
	return ""
}

// Scripts returns the script tags needed to activate the embeds for urls,
// each at most once, Instagram before TikTok.
func Scripts(urls ...string) string {
	var needInstagram, needTikTok bool
	for _, u := range urls {
		switch PlatformOf(u) {
		case Instagram:
			needInstagram = true
		case TikTok:
			needTikTok = true
		}
	}
	var b strings.Builder
	if needInstagram {
		fmt.Fprintf(&b, "<script async src=%q></script>\n", InstagramScript)
	}
	if needTikTok {
		fmt.Fprintf(&b, "<script async src=%q></script>\n", TikTokScript)
	}
	return b.String()
}

func youtubeEmbed(id string) string {
	src := "https://www.youtube-nocookie.com/embed/" + url.PathEscape(id) + "?rel=0"
	return `<div class="yt-inline" aria-label="Embedded YouTube video">
  <div class="yt-embed">
    <iframe
      src="` + markdown.EscapeAttr(src) + `"
      title="YouTube video"
      loading="lazy"
      referrerpolicy="strict-origin-when-cross-origin"
      allow="` + youtubeAllow + `"
      allowfullscreen
    ></iframe>
  </div>
</div>`
}

func instagramEmbed(raw string) string {
	return `<div class="ig-inline" aria-label="Embedded Instagram video">
  <blockquote
    class="instagram-media"
    data-instgrm-permalink="` + markdown.EscapeAttr(InstagramPermalink(raw)) + `"
    data-instgrm-version="14"
  ></blockquote>
</div>`
}

// tiktokEmbed always renders the blockquote shell; without a video id the
// TikTok script resolves the cite URL itself.
func tiktokEmbed(raw string) string {
	videoID := ""
	if id := TikTokID(raw); id != "" {
		videoID = "\n    data-video-id=\"" + markdown.EscapeAttr(id) + "\""
	}
	return `<div class="tt-inline" aria-label="Embedded TikTok video">
  <blockquote
    class="tiktok-embed"
    cite="` + markdown.EscapeAttr(raw) + `"` + videoID + `
  ><section></section></blockquote>
</div>`
}
