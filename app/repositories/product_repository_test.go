package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/shashiranjanraj/kidstore/app/models"
)

func TestBuildSetUpdate(t *testing.T) {
	update := buildSetUpdate(map[string]any{
		"unit":  "hộp",
		"name":  "Sữa bột",
		"_id":   "should-be-dropped",
		"id":    "should-be-dropped",
		"brand": "",
	})

	set, ok := update["$set"].(bson.M)
	require.True(t, ok, "update must be a $set merge, never a full replace")

	assert.Equal(t, "hộp", set["unit"])
	assert.Equal(t, "Sữa bột", set["name"])
	assert.Equal(t, "", set["brand"], "empty strings are legitimate values")
	assert.NotContains(t, set, "_id")
	assert.NotContains(t, set, "id")
}

func TestSubscriptionPushKeepsLatest(t *testing.T) {
	sub := &Subscription{ch: make(chan []models.Product, 1)}

	sub.push([]models.Product{{Name: "first"}})
	sub.push([]models.Product{{Name: "second"}})
	sub.push([]models.Product{{Name: "third"}})

	got := <-sub.C()
	require.Len(t, got, 1)
	assert.Equal(t, "third", got[0].Name, "slow consumers see only the newest snapshot")

	select {
	case <-sub.C():
		t.Fatal("no further snapshot should be buffered")
	default:
	}
}
