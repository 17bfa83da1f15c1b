package media

import (
	"fmt"
	"regexp"

	"github.com/pkg/errors"
)

// Recognized YouTube URL shapes plus a bare 11-character video id.
var (
	youtubeURLPattern = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([^&\s?]+)`)
	youtubeIDPattern  = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)
)

var ErrInvalidYouTubeURL = errors.New("unrecognized youtube url")

// ExtractYouTubeID pulls the video id out of a pasted YouTube link.
// watch?v=, youtu.be/ and embed/ links are accepted, as is a raw
// 11-character id. Anything else is rejected rather than risking a
// malformed embed URL.
func ExtractYouTubeID(input string) (string, error) {
	if m := youtubeURLPattern.FindStringSubmatch(input); m != nil {
		return m[1], nil
	}
	if youtubeIDPattern.MatchString(input) {
		return input, nil
	}
	return "", errors.Wrap(ErrInvalidYouTubeURL, input)
}

// YouTubeEmbedURL builds the player embed URL for an extracted id.
func YouTubeEmbedURL(id string) string {
	return fmt.Sprintf("https://www.youtube.com/embed/%s", id)
}

// YouTubeThumbnailURL builds the medium-quality thumbnail URL.
func YouTubeThumbnailURL(id string) string {
	return fmt.Sprintf("https://img.youtube.com/vi/%s/mqdefault.jpg", id)
}
