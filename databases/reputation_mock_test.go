package databases_test

import (
	"context"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/whosonpole/whos-on-pole-api/databases"
	"github.com/whosonpole/whos-on-pole-api/databases/mocks"
	"github.com/whosonpole/whos-on-pole-api/models"
)

func setupReputationMocks() (*mocks.DatabaseHelper, *mocks.CollectionHelper, *mocks.SingleResultHelper) {
	db := &mocks.DatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	singleResult := &mocks.SingleResultHelper{}

	db.On("Collection", "reputations").Return(conn)
	singleResult.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*models.UserReputation)
		arg.UserID = "user-1"
		arg.Points = 7
	})
	return db, conn, singleResult
}

func TestReputationDatabase_IncrementPointsUsesAtomicInc(t *testing.T) {
	db, conn, singleResult := setupReputationMocks()

	conn.On("FindOneAndUpdate",
		mock.Anything,
		bson.M{"userId": "user-1"},
		mock.MatchedBy(func(update bson.M) bool {
			inc, ok := update["$inc"].(bson.M)
			return ok && inc["points"] == 12
		}),
		mock.Anything,
	).Return(singleResult)

	rdb := databases.NewReputationDatabase(db)
	rep, err := rdb.IncrementPoints(context.Background(), "user-1", 12)

	assert.NoError(t, err)
	assert.Equal(t, "user-1", rep.UserID)
	conn.AssertExpectations(t)
}

func TestReputationDatabase_ConcurrentAdjustmentsConverge(t *testing.T) {
	db := &mocks.DatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	singleResult := &mocks.SingleResultHelper{}
	db.On("Collection", "reputations").Return(conn)
	singleResult.On("Decode", mock.Anything).Return(nil)

	// the fake collection applies each $inc as one atomic step, the way
	// mongo does server-side
	var mu sync.Mutex
	points := 7
	conn.On("FindOneAndUpdate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			update := args.Get(2).(bson.M)
			delta := update["$inc"].(bson.M)["points"].(int)
			mu.Lock()
			points += delta
			mu.Unlock()
		}).
		Return(singleResult)

	rdb := databases.NewReputationDatabase(db)

	deltas := make([]int, 64)
	want := 7
	for i := range deltas {
		deltas[i] = rand.Intn(41) - 20
		want += deltas[i]
	}

	var wg sync.WaitGroup
	for _, d := range deltas {
		wg.Add(1)
		go func(d int) {
			defer wg.Done()
			_, err := rdb.IncrementPoints(context.Background(), "user-1", d)
			assert.NoError(t, err)
		}(d)
	}
	wg.Wait()

	// every delta lands exactly once regardless of interleaving
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, want, points)
}

func TestReputationDatabase_RecordViolationIsOneUpdate(t *testing.T) {
	db, conn, singleResult := setupReputationMocks()

	conn.On("FindOneAndUpdate",
		mock.Anything,
		bson.M{"userId": "user-1"},
		mock.MatchedBy(func(update bson.M) bool {
			inc, ok := update["$inc"].(bson.M)
			return ok && inc["strikes"] == 1 && inc["points"] == -5
		}),
		mock.Anything,
	).Return(singleResult)

	rdb := databases.NewReputationDatabase(db)
	_, err := rdb.RecordViolation(context.Background(), "user-1", 5)

	assert.NoError(t, err)
	conn.AssertExpectations(t)
}

func TestReputationDatabase_ClearBanNullsExpiry(t *testing.T) {
	db, conn, singleResult := setupReputationMocks()

	conn.On("FindOneAndUpdate",
		mock.Anything,
		bson.M{"userId": "user-1"},
		mock.MatchedBy(func(update bson.M) bool {
			set, ok := update["$set"].(bson.M)
			if !ok {
				return false
			}
			v, present := set["bannedUntil"]
			return present && v == nil
		}),
		mock.Anything,
	).Return(singleResult)

	rdb := databases.NewReputationDatabase(db)
	_, err := rdb.ClearBan(context.Background(), "user-1")

	assert.NoError(t, err)
	conn.AssertExpectations(t)
}

func TestContentDatabase_FindOwnerProfileIsTheTarget(t *testing.T) {
	cdb := databases.NewContentDatabase(&mocks.DatabaseHelper{})

	// no collection lookup happens for profile targets
	owner, err := cdb.FindOwner(context.Background(), models.TargetTypeProfile, "user-9")

	assert.NoError(t, err)
	assert.Equal(t, "user-9", owner)
}

func TestContentDatabase_UnknownTargetType(t *testing.T) {
	cdb := databases.NewContentDatabase(&mocks.DatabaseHelper{})

	err := cdb.DeleteOne(context.Background(), "dm", "abc")

	assert.Equal(t, databases.ErrUnknownTargetType, err)
}
