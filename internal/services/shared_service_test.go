package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/diary-api/internal/constants"
	"github.com/yukikurage/diary-api/internal/models"
)

func TestSharedService_Create_MembershipBounds(t *testing.T) {
	env := setupServiceTestEnv(t)
	ctx := context.Background()
	owner := createTestUser(t, env.db, "owner")

	var names []string
	for i := 1; i <= 5; i++ {
		name := fmt.Sprintf("friend%d", i)
		createTestUser(t, env.db, name)
		names = append(names, name)
	}

	_, err := env.shared.Create(ctx, CreateSharedInput{Title: "none", OwnerID: owner.ID})
	require.ErrorIs(t, err, ErrTooFewMembers)

	_, err = env.shared.Create(ctx, CreateSharedInput{Title: "crowd", OwnerID: owner.ID, InviteeUsernames: names})
	require.ErrorIs(t, err, ErrTooManyMembers)
	require.Zero(t, countRows(t, env.db, &models.SharedJournal{}))

	for n := 1; n <= 4; n++ {
		journal, err := env.shared.Create(ctx, CreateSharedInput{
			Title:            fmt.Sprintf("journal %d", n),
			OwnerID:          owner.ID,
			InviteeUsernames: names[:n],
		})
		require.NoError(t, err)

		_, members, err := env.shared.Get(ctx, journal.ID)
		require.NoError(t, err)
		require.Len(t, members, n+1)
		require.Equal(t, owner.ID, members[0].UserID)
		require.Equal(t, models.RoleOwner, members[0].Role)
		for _, m := range members[1:] {
			require.Equal(t, models.RoleMember, m.Role)
		}
	}
}

func TestSharedService_Create_UnknownUserIsAtomic(t *testing.T) {
	env := setupServiceTestEnv(t)
	ctx := context.Background()
	alice := createTestUser(t, env.db, "alice")
	createTestUser(t, env.db, "bob")

	_, err := env.shared.Create(ctx, CreateSharedInput{
		Title:            "trip",
		OwnerID:          alice.ID,
		InviteeUsernames: []string{"bob", "carol"},
	})
	require.ErrorIs(t, err, ErrUnknownUser)

	var unknown *UnknownUserError
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, "carol", unknown.Username)

	require.Zero(t, countRows(t, env.db, &models.SharedJournal{}))
	require.Zero(t, countRows(t, env.db, &models.SharedMember{}))

	journals, err := env.shared.ListForUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Empty(t, journals)
}

func TestSharedService_Create_NormalizesInvitees(t *testing.T) {
	env := setupServiceTestEnv(t)
	ctx := context.Background()
	alice := createTestUser(t, env.db, "alice")
	createTestUser(t, env.db, "bob")

	journal, err := env.shared.Create(ctx, CreateSharedInput{
		Title:            "   ",
		OwnerID:          alice.ID,
		InviteeUsernames: []string{" bob", "bob", "alice", ""},
	})
	require.NoError(t, err)
	require.Equal(t, constants.DefaultSharedTitle, journal.Title)
	require.Len(t, journal.Members, 2)

	_, err = env.shared.Create(ctx, CreateSharedInput{
		Title:            "just me",
		OwnerID:          alice.ID,
		InviteeUsernames: []string{"alice"},
	})
	require.ErrorIs(t, err, ErrTooFewMembers)
}

func TestSharedService_Create_BoundsCountDistinctInvitees(t *testing.T) {
	env := setupServiceTestEnv(t)
	ctx := context.Background()
	alice := createTestUser(t, env.db, "alice")
	for _, name := range []string{"u1", "u2", "u3", "u4", "u5"} {
		createTestUser(t, env.db, name)
	}

	// Five names where one is the owner: four real invitees.
	journal, err := env.shared.Create(ctx, CreateSharedInput{
		OwnerID:          alice.ID,
		InviteeUsernames: []string{"u1", "u2", "alice", "u3", "u4"},
	})
	require.NoError(t, err)
	require.Len(t, journal.Members, 5)

	// Five names with a repeat: four real invitees.
	journal, err = env.shared.Create(ctx, CreateSharedInput{
		OwnerID:          alice.ID,
		InviteeUsernames: []string{"u1", "u2", "u2", "u3", "u4"},
	})
	require.NoError(t, err)
	require.Len(t, journal.Members, 5)

	// Five distinct invitees always exceed the limit.
	_, err = env.shared.Create(ctx, CreateSharedInput{
		OwnerID:          alice.ID,
		InviteeUsernames: []string{"u1", "u2", "u3", "u4", "u5"},
	})
	require.ErrorIs(t, err, ErrTooManyMembers)
}

func TestSharedService_ListForUser_NewestFirst(t *testing.T) {
	env := setupServiceTestEnv(t)
	ctx := context.Background()
	alice := createTestUser(t, env.db, "alice")
	bob := createTestUser(t, env.db, "bob")
	createTestUser(t, env.db, "carol")

	first, err := env.shared.Create(ctx, CreateSharedInput{Title: "first", OwnerID: alice.ID, InviteeUsernames: []string{"bob"}})
	require.NoError(t, err)
	second, err := env.shared.Create(ctx, CreateSharedInput{Title: "second", OwnerID: bob.ID, InviteeUsernames: []string{"alice", "carol"}})
	require.NoError(t, err)

	journals, err := env.shared.ListForUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, journals, 2)
	require.Equal(t, second.ID, journals[0].Journal.ID)
	require.Equal(t, models.RoleMember, journals[0].Role)
	require.Equal(t, int64(3), journals[0].MemberCount)
	require.Equal(t, first.ID, journals[1].Journal.ID)
	require.Equal(t, models.RoleOwner, journals[1].Role)
	require.Equal(t, int64(2), journals[1].MemberCount)
}

func TestSharedService_EntriesNewestFirst(t *testing.T) {
	env := setupServiceTestEnv(t)
	ctx := context.Background()
	alice := createTestUser(t, env.db, "alice")
	bob := createTestUser(t, env.db, "bob")

	journal, err := env.shared.Create(ctx, CreateSharedInput{Title: "trip", OwnerID: alice.ID, InviteeUsernames: []string{"bob"}})
	require.NoError(t, err)

	_, err = env.shared.AddEntry(ctx, journal.ID, alice.ID, "day one")
	require.NoError(t, err)
	_, err = env.shared.AddEntry(ctx, journal.ID, bob.ID, "day two")
	require.NoError(t, err)
	_, err = env.shared.AddEntry(ctx, journal.ID, bob.ID, "day three")
	require.NoError(t, err)

	_, err = env.shared.AddEntry(ctx, journal.ID, bob.ID, " ")
	require.ErrorIs(t, err, ErrInvalidInput)

	entries, err := env.shared.ListEntries(ctx, journal.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, "day three", entries[0].Content)
	require.Equal(t, "bob", entries[0].Author.Username)
	require.Equal(t, "day one", entries[2].Content)
	require.Equal(t, "alice", entries[2].Author.Username)
}

func TestSharedService_IsMember(t *testing.T) {
	env := setupServiceTestEnv(t)
	ctx := context.Background()
	alice := createTestUser(t, env.db, "alice")
	bob := createTestUser(t, env.db, "bob")
	carol := createTestUser(t, env.db, "carol")

	journal, err := env.shared.Create(ctx, CreateSharedInput{Title: "trip", OwnerID: alice.ID, InviteeUsernames: []string{"bob"}})
	require.NoError(t, err)

	for _, tc := range []struct {
		user *models.User
		want bool
	}{{alice, true}, {bob, true}, {carol, false}} {
		ok, err := env.shared.IsMember(ctx, journal.ID, tc.user.ID)
		require.NoError(t, err)
		require.Equal(t, tc.want, ok, tc.user.Username)
	}

	ok, err := env.shared.IsMember(ctx, journal.ID+42, alice.ID)
	require.NoError(t, err)
	require.False(t, ok)

	_, _, err = env.shared.Get(ctx, journal.ID+42)
	require.ErrorIs(t, err, ErrJournalNotFound)
}
