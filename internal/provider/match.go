package provider

import (
	"lyrebird/internal/identity"
	"lyrebird/internal/textutil"
)

// minMatchScore is the floor below which the best candidate is rejected
// as a bad match and the search reports a miss.
const minMatchScore = 30

// BestMatch scores candidates against the wanted identity and returns the
// strongest one, or nil when nothing clears the minimum score.
//
// Scoring: exact title 100, title substring 50, mutual artist substring 30,
// a platform-priority bonus of (10 - index) for listed platforms, and a small
// album-similarity bonus to break ties between otherwise equal hits.
func BestMatch(want identity.Identity, candidates []Match, platforms []string) *Match {
	if len(candidates) == 0 {
		return nil
	}

	wantTitle := textutil.Normalize(want.Title)
	wantArtist := textutil.Normalize(want.Artist)
	wantAlbum := textutil.NewFingerprint(want.Album)

	bestScore := -1
	var best *Match
	for i := range candidates {
		candidate := &candidates[i]
		score := 0

		gotTitle := textutil.Normalize(candidate.Title)
		switch {
		case gotTitle != "" && gotTitle == wantTitle:
			score += 100
		case wantTitle != "" && textutil.ContainsFold(candidate.Title, want.Title):
			score += 50
		}

		gotArtist := textutil.Normalize(candidate.Artist)
		if wantArtist != "" && gotArtist != "" {
			if textutil.ContainsFold(candidate.Artist, want.Artist) || textutil.ContainsFold(want.Artist, candidate.Artist) {
				score += 30
			}
		}

		if idx := platformIndex(platforms, candidate.Platform); idx >= 0 && idx < 10 {
			score += 10 - idx
		}

		if wantAlbum != nil {
			score += int(textutil.CosineSimilarity(wantAlbum, textutil.NewFingerprint(candidate.Album)) * 5)
		}

		if score > bestScore {
			bestScore = score
			best = candidate
		}
	}

	if bestScore < minMatchScore {
		return nil
	}
	return best
}

func platformIndex(platforms []string, platform string) int {
	for i, p := range platforms {
		if textutil.EqualFold(p, platform) {
			return i
		}
	}
	return -1
}
