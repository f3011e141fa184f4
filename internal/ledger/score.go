package ledger

import "github.com/sandeepkv93/studystreak/internal/model"

const RewardPoints = 10

func AwardPoints(rec *model.UserRecord, amount int) {
	if rec == nil || amount <= 0 {
		return
	}
	rec.Points += amount
}

func GetScore(store model.Store, userID string) int {
	rec, ok := store.Lookup(userID)
	if !ok {
		return 0
	}
	return rec.Points
}
