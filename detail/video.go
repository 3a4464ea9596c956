package detail

import "regexp"

const (
	videoIDLength = 11
	embedBaseURL  = "https://www.youtube.com/embed/"
)

var videoRe = regexp.MustCompile(`^.*(youtu.be/|v/|u/\w/|embed/|watch\?v=|&v=)([^#&?]*).*`)

// ExtractVideoID pulls the 11-character YouTube video id out of the short
// link, /v/, /u/x/, embed, watch?v= and &v= URL forms.
func ExtractVideoID(url string) (string, bool) {
	m := videoRe.FindStringSubmatch(url)
	if m == nil || len(m[2]) != videoIDLength {
		return "", false
	}
	return m[2], true
}

// EmbedURL returns the player URL for a video id.
func EmbedURL(id string) string {
	return embedBaseURL + id
}
