package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"quickai-backend/internal/models"
)

func TestGetUserCreations_OnlyOwnRows(t *testing.T) {
	e := newEnv(t)
	_, err := e.store.CreateCreation("alice", "Coffee shop", "1. The Daily Grind", models.TypeBlogTitle, false)
	require.NoError(t, err)
	_, err = e.store.CreateCreation("bob", "Tea house", "1. Steeped in Style", models.TypeBlogTitle, false)
	require.NoError(t, err)

	resp := envelope(t, e.get(t, "alice", "/api/user/get-user-creations"))
	require.True(t, resp.Success)

	listed, err := json.Marshal(resp.Content)
	require.NoError(t, err)
	assert.Contains(t, string(listed), "The Daily Grind")
	assert.NotContains(t, string(listed), "Steeped in Style")
}

func TestGetUserCreations_EmptyListNotNull(t *testing.T) {
	e := newEnv(t)

	w := e.get(t, "alice", "/api/user/get-user-creations")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"content":[]`)
}

func TestGetPublishedCreations_FiltersUnpublishedAndNonImages(t *testing.T) {
	e := newEnv(t)
	_, err := e.store.CreateCreation("alice", "a lighthouse", "https://storage.example.com/a.png", models.TypeImage, true)
	require.NoError(t, err)
	_, err = e.store.CreateCreation("alice", "a cave", "https://storage.example.com/b.png", models.TypeImage, false)
	require.NoError(t, err)
	_, err = e.store.CreateCreation("alice", "Coffee shop", "1. The Daily Grind", models.TypeBlogTitle, true)
	require.NoError(t, err)

	resp := envelope(t, e.get(t, "bob", "/api/user/get-published-creations"))
	require.True(t, resp.Success)

	listed, err := json.Marshal(resp.Content)
	require.NoError(t, err)
	assert.Contains(t, string(listed), "a.png")
	assert.NotContains(t, string(listed), "b.png")
	assert.NotContains(t, string(listed), "The Daily Grind")
}

func TestToggleLike_DoubleToggleRestoresState(t *testing.T) {
	e := newEnv(t)
	created, err := e.store.CreateCreation("alice", "a lighthouse", "https://storage.example.com/a.png", models.TypeImage, true)
	require.NoError(t, err)

	first := envelope(t, e.postJSON(t, "bob", "/api/user/toggle-like-creations", models.ToggleLikeRequest{CreationID: created.ID}))
	require.True(t, first.Success)
	assert.Equal(t, "Creation liked", first.Message)
	assert.Equal(t, []string{"bob"}, []string(e.store.creations[0].Likes))

	second := envelope(t, e.postJSON(t, "bob", "/api/user/toggle-like-creations", models.ToggleLikeRequest{CreationID: created.ID}))
	require.True(t, second.Success)
	assert.Equal(t, "Like removed", second.Message)
	assert.Empty(t, e.store.creations[0].Likes)
}

func TestToggleLike_TwoUsersAccumulate(t *testing.T) {
	e := newEnv(t)
	created, err := e.store.CreateCreation("alice", "a lighthouse", "https://storage.example.com/a.png", models.TypeImage, true)
	require.NoError(t, err)

	e.postJSON(t, "bob", "/api/user/toggle-like-creations", models.ToggleLikeRequest{CreationID: created.ID})
	e.postJSON(t, "carol", "/api/user/toggle-like-creations", models.ToggleLikeRequest{CreationID: created.ID})

	assert.ElementsMatch(t, []string{"bob", "carol"}, []string(e.store.creations[0].Likes))
}

func TestToggleLike_MissingCreationID(t *testing.T) {
	e := newEnv(t)

	resp := envelope(t, e.postJSON(t, "bob", "/api/user/toggle-like-creations", models.ToggleLikeRequest{}))
	assert.False(t, resp.Success)
	assert.Equal(t, "creationId is required", resp.Message)
}

func TestToggleLike_UnknownCreation(t *testing.T) {
	e := newEnv(t)

	w := e.postJSON(t, "bob", "/api/user/toggle-like-creations", models.ToggleLikeRequest{CreationID: 404})
	resp := envelope(t, w)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, resp.Success)
}
