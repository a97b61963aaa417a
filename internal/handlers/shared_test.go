package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/diary-api/internal/constants"
	"github.com/yukikurage/diary-api/internal/dto"
	apierrors "github.com/yukikurage/diary-api/internal/errors"
	"github.com/yukikurage/diary-api/internal/models"
	"github.com/yukikurage/diary-api/internal/services"
)

func TestSharedHandler_CreateJournal(t *testing.T) {
	env := setupHandlerTestEnv(t)
	handler := NewSharedHandler(env.shared, env.guard)
	owner := createTestUser(t, env.db, "owner")
	createTestUser(t, env.db, "friend")

	body, err := json.Marshal(map[string]interface{}{
		"title":    "Summer",
		"invitees": []string{"friend"},
	})
	require.NoError(t, err)

	c, w := testContext(http.MethodPost, "/api/shared", body, owner)

	handler.CreateJournal(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.SharedJournalDetailDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Summer", response.Title)
	require.Len(t, response.Members, 2)
	require.Equal(t, "owner", response.Members[0].User.Username)
	require.Equal(t, models.RoleOwner, response.Members[0].Role)
}

func TestSharedHandler_CreateJournal_Errors(t *testing.T) {
	env := setupHandlerTestEnv(t)
	handler := NewSharedHandler(env.shared, env.guard)
	owner := createTestUser(t, env.db, "owner")
	for _, name := range []string{"u1", "u2", "u3", "u4", "u5"} {
		createTestUser(t, env.db, name)
	}

	cases := []struct {
		name     string
		invitees []string
		status   int
		code     string
	}{
		{"no invitees", nil, http.StatusUnprocessableEntity, apierrors.ErrCodeInvalidMembership},
		{"too many", []string{"u1", "u2", "u3", "u4", "u5"}, http.StatusUnprocessableEntity, apierrors.ErrCodeInvalidMembership},
		{"unknown", []string{"u1", "stranger"}, http.StatusUnprocessableEntity, apierrors.ErrCodeUnknownUser},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body, err := json.Marshal(map[string]interface{}{"title": "x", "invitees": tc.invitees})
			require.NoError(t, err)

			c, w := testContext(http.MethodPost, "/api/shared", body, owner)
			handler.CreateJournal(c)

			require.Equal(t, tc.status, w.Code)
			var response apierrors.APIError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			require.Equal(t, tc.code, response.Code)
		})
	}

	var count int64
	require.NoError(t, env.db.Model(&models.SharedJournal{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestSharedHandler_Entries(t *testing.T) {
	env := setupHandlerTestEnv(t)
	handler := NewSharedHandler(env.shared, env.guard)
	owner := createTestUser(t, env.db, "owner")
	friend := createTestUser(t, env.db, "friend")

	journal, err := env.shared.Create(context.Background(), services.CreateSharedInput{
		Title:            "Summer",
		OwnerID:          owner.ID,
		InviteeUsernames: []string{"friend"},
	})
	require.NoError(t, err)
	idParam := gin.Params{{Key: "id", Value: strconv.FormatUint(journal.ID, 10)}}

	for _, content := range []string{"one", "two", "three"} {
		body, err := json.Marshal(map[string]string{"content": content})
		require.NoError(t, err)

		c, w := testContext(http.MethodPost, "/api/shared/1/entries", body, friend)
		c.Params = idParam
		c.Set(constants.ContextKeyJournal, journal.ID)

		handler.AddEntry(c)

		require.Equal(t, http.StatusCreated, w.Code)
		var entry dto.SharedEntryDTO
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entry))
		require.Equal(t, "friend", entry.Author.Username)
	}

	c, w := testContext(http.MethodGet, "/api/shared/1/entries?page=1&limit=2", nil, owner)
	c.Params = idParam
	c.Set(constants.ContextKeyJournal, journal.ID)

	handler.ListEntries(c)

	require.Equal(t, http.StatusOK, w.Code)
	var response struct {
		Entries    []dto.SharedEntryDTO `json:"entries"`
		Pagination struct {
			Page  int `json:"page"`
			Limit int `json:"limit"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Entries, 2)
	require.Equal(t, "three", response.Entries[0].Content)
	require.Equal(t, "two", response.Entries[1].Content)
	require.Equal(t, 2, response.Pagination.Limit)
}

func TestSharedHandler_AddEntry_NonMember(t *testing.T) {
	env := setupHandlerTestEnv(t)
	handler := NewSharedHandler(env.shared, env.guard)
	owner := createTestUser(t, env.db, "owner")
	createTestUser(t, env.db, "friend")
	outsider := createTestUser(t, env.db, "outsider")

	journal, err := env.shared.Create(context.Background(), services.CreateSharedInput{
		OwnerID:          owner.ID,
		InviteeUsernames: []string{"friend"},
	})
	require.NoError(t, err)

	body, err := json.Marshal(map[string]string{"content": "let me in"})
	require.NoError(t, err)

	// Even if the membership middleware were skipped, the guard rejects the write.
	c, w := testContext(http.MethodPost, "/api/shared/1/entries", body, outsider)
	c.Set(constants.ContextKeyJournal, journal.ID)

	handler.AddEntry(c)

	require.Equal(t, http.StatusNotFound, w.Code)
	var count int64
	require.NoError(t, env.db.Model(&models.SharedEntry{}).Count(&count).Error)
	require.Zero(t, count)
}
