package obfuscate

import (
	"encoding/base64"
	"fmt"
	"strings"

	stringutils "github.com/l3uddz/streamarr/utils/strings"
	"github.com/pkg/errors"
)

const (
	digitAlphabet = "abcdefghij"
)

/* Public */

// EncodeMovieID maps every digit to a letter, reverses the result and base64 encodes it twice.
func EncodeMovieID(movieId string) (string, error) {
	var sb strings.Builder
	for _, c := range movieId {
		if c < '0' || c > '9' {
			return "", fmt.Errorf("movie id must be numeric: %q", movieId)
		}
		sb.WriteByte(digitAlphabet[c-'0'])
	}

	return doubleEncode(sb.String())
}

func DecodeMovieID(encoded string) (string, error) {
	letters, err := doubleDecode(encoded)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, c := range letters {
		i := strings.IndexRune(digitAlphabet, c)
		if i < 0 {
			return "", fmt.Errorf("invalid encoded movie id: %q", encoded)
		}
		sb.WriteByte(byte('0' + i))
	}

	return sb.String(), nil
}

// EncodeEpisodeID reverses "show-season-episode" and base64 encodes it twice.
func EncodeEpisodeID(showId string, season string, episode string) (string, error) {
	return doubleEncode(fmt.Sprintf("%s-%s-%s", showId, season, episode))
}

func DecodeEpisodeID(encoded string) (showId string, season string, episode string, err error) {
	plain, err := doubleDecode(encoded)
	if err != nil {
		return "", "", "", err
	}

	parts := strings.Split(plain, "-")
	if len(parts) != 3 {
		return "", "", "", fmt.Errorf("invalid encoded episode id: %q", encoded)
	}

	return parts[0], parts[1], parts[2], nil
}

/* Private */

func doubleEncode(text string) (string, error) {
	first, err := btoa(stringutils.Reverse(text))
	if err != nil {
		return "", err
	}

	return btoa(first)
}

func doubleDecode(encoded string) (string, error) {
	first, err := atob(encoded)
	if err != nil {
		return "", err
	}

	second, err := atob(first)
	if err != nil {
		return "", err
	}

	return stringutils.Reverse(second), nil
}

// btoa base64 encodes text as Latin-1, rejecting characters outside that range.
func btoa(text string) (string, error) {
	b := make([]byte, 0, len(text))
	for _, r := range text {
		if r > 0xFF {
			return "", errors.New("btoa failed: the string contains characters outside of the Latin1 range")
		}
		b = append(b, byte(r))
	}

	return base64.StdEncoding.EncodeToString(b), nil
}

func atob(encoded string) (string, error) {
	b, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", errors.Wrapf(err, "failed decoding base64: %q", encoded)
	}

	r := make([]rune, len(b))
	for i, c := range b {
		r[i] = rune(c)
	}

	return string(r), nil
}
