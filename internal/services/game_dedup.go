package services

import "github.com/syncapp/sync-backend/internal/models"

// DedupActiveSessions collapses the active-session list down to one session
// per game type. Historical bugs let duplicates slip in, so reads repair the
// view instead of trusting the store. The survivor per type is the one with
// the greatest creation time; on an exact tie the first one seen wins.
// Running the result through again changes nothing.
func DedupActiveSessions(sessions []models.GameSession) []models.GameSession {
	kept := make([]models.GameSession, 0, len(sessions))
	byType := make(map[string]int)

	for _, session := range sessions {
		idx, seen := byType[session.GameType]
		if !seen {
			byType[session.GameType] = len(kept)
			kept = append(kept, session)
			continue
		}
		if session.CreatedAt.UnixMilli() > kept[idx].CreatedAt.UnixMilli() {
			kept[idx] = session
		}
	}
	return kept
}

// LiveSessionOfType picks the pair's live session of the given type out of an
// active-session list, nil when there is none. Duplicates are repaired first,
// so the newest survivor is returned.
func LiveSessionOfType(sessions []models.GameSession, gameType string) *models.GameSession {
	for _, session := range DedupActiveSessions(sessions) {
		if session.GameType == gameType && session.Live() {
			found := session
			return &found
		}
	}
	return nil
}
