package usecase

import (
	"context"
	"testing"
	"time"

	"campus-connect-server/domain/entity"
	domainErrors "campus-connect-server/domain/errors"
	"campus-connect-server/internal/ws"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newEventUseCase() (*EventUseCase, *MockClubRepository, *MockEventRepository, *MockFeed) {
	clubs := new(MockClubRepository)
	events := new(MockEventRepository)
	feed := new(MockFeed)
	return NewEventUseCase(clubs, events, feed), clubs, events, feed
}

func asLead(ctx context.Context, clubs *MockClubRepository, clubID, userID string) {
	clubs.On("GetByID", ctx, clubID).Return(&entity.Club{ID: clubID, IsApproved: true}, nil)
	clubs.On("GetMembership", ctx, clubID, userID).Return(&entity.ClubMember{ClubID: clubID, UserID: userID, Role: entity.MemberRoleLead}, nil)
}

func sampleEvent() *entity.Event {
	return &entity.Event{
		ID:          "e1",
		ClubID:      "c1",
		Title:       "Kickoff",
		Description: "first meeting",
		EventDate:   time.Date(2026, 11, 3, 18, 0, 0, 0, time.UTC),
		Location:    "Hall A",
		Status:      entity.EventStatusDraft,
	}
}

func TestEventUseCase_Create_DefaultsToDraft(t *testing.T) {
	ctx := context.Background()
	uc, clubs, events, feed := newEventUseCase()
	asLead(ctx, clubs, "c1", "lead-1")

	events.On("Create", ctx, mock.MatchedBy(func(e *entity.Event) bool {
		return e.ClubID == "c1" && e.Status == entity.EventStatusDraft && e.CreatedBy == "lead-1" && e.ID != ""
	})).Return(nil).Once()
	feed.On("PublishToClub", "c1", ws.TypeEventCreated, mock.Anything).Once()

	event, err := uc.Create(ctx, "c1", "lead-1", EventInput{Title: "Kickoff", EventDate: time.Now()})
	require.NoError(t, err)
	assert.Equal(t, entity.EventStatusDraft, event.Status)
	events.AssertExpectations(t)
	feed.AssertExpectations(t)
}

func TestEventUseCase_Create_RequiresLead(t *testing.T) {
	ctx := context.Background()

	t.Run("plain member", func(t *testing.T) {
		uc, clubs, events, _ := newEventUseCase()
		clubs.On("GetByID", ctx, "c1").Return(&entity.Club{ID: "c1"}, nil)
		clubs.On("GetMembership", ctx, "c1", "u1").Return(&entity.ClubMember{Role: entity.MemberRoleMember}, nil)

		_, err := uc.Create(ctx, "c1", "u1", EventInput{Title: "x"})
		assert.ErrorIs(t, err, domainErrors.ErrNotClubLead)
		events.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("not a member", func(t *testing.T) {
		uc, clubs, _, _ := newEventUseCase()
		clubs.On("GetByID", ctx, "c1").Return(&entity.Club{ID: "c1"}, nil)
		clubs.On("GetMembership", ctx, "c1", "u1").Return(nil, nil)

		_, err := uc.Create(ctx, "c1", "u1", EventInput{Title: "x"})
		assert.ErrorIs(t, err, domainErrors.ErrNotClubLead)
	})

	t.Run("missing club", func(t *testing.T) {
		uc, clubs, _, _ := newEventUseCase()
		clubs.On("GetByID", ctx, "c9").Return(nil, nil)

		_, err := uc.Create(ctx, "c9", "u1", EventInput{Title: "x"})
		assert.ErrorIs(t, err, domainErrors.ErrClubNotFound)
	})
}

func TestEventUseCase_Create_InvalidStatus(t *testing.T) {
	ctx := context.Background()
	uc, clubs, _, _ := newEventUseCase()
	asLead(ctx, clubs, "c1", "lead-1")

	_, err := uc.Create(ctx, "c1", "lead-1", EventInput{Title: "x", Status: "archived"})
	assert.ErrorIs(t, err, domainErrors.ErrInvalidEventStatus)
}

func TestEventUseCase_Get_NotFound(t *testing.T) {
	ctx := context.Background()
	uc, _, events, _ := newEventUseCase()
	events.On("GetByID", ctx, "nope").Return(nil, nil)

	_, err := uc.Get(ctx, "nope")
	assert.ErrorIs(t, err, domainErrors.ErrEventNotFound)
}

func TestEventUseCase_Patch(t *testing.T) {
	ctx := context.Background()
	uc, clubs, events, feed := newEventUseCase()
	asLead(ctx, clubs, "c1", "lead-1")

	events.On("GetByID", ctx, "e1").Return(sampleEvent(), nil)
	events.On("Update", ctx, mock.MatchedBy(func(e *entity.Event) bool {
		return e.Title == "Kickoff 2026" && e.Status == entity.EventStatusPublished && e.Location == "Hall A"
	})).Return(nil).Once()
	feed.On("PublishToClub", "c1", ws.TypeEventUpdated, mock.Anything).Once()

	patch := []byte(`[
		{"op": "replace", "path": "/title", "value": "Kickoff 2026"},
		{"op": "replace", "path": "/status", "value": "published"}
	]`)
	event, err := uc.Patch(ctx, "e1", "lead-1", patch)
	require.NoError(t, err)
	assert.Equal(t, "Kickoff 2026", event.Title)
	assert.Equal(t, time.Date(2026, 11, 3, 18, 0, 0, 0, time.UTC), event.EventDate.UTC())
	events.AssertExpectations(t)
	feed.AssertExpectations(t)
}

func TestEventUseCase_Patch_Rejected(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name  string
		patch string
		want  error
	}{
		{"malformed document", `{not json`, domainErrors.ErrInvalidPatch},
		{"missing path", `[{"op": "remove", "path": "/nope"}]`, domainErrors.ErrInvalidPatch},
		{"non editable field", `[{"op": "add", "path": "/is_admin_approved", "value": true}]`, domainErrors.ErrInvalidPatch},
		{"bad date", `[{"op": "replace", "path": "/event_date", "value": "tomorrow"}]`, domainErrors.ErrInvalidPatch},
		{"unknown status", `[{"op": "replace", "path": "/status", "value": "archived"}]`, domainErrors.ErrInvalidEventStatus},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, clubs, events, _ := newEventUseCase()
			asLead(ctx, clubs, "c1", "lead-1")
			events.On("GetByID", ctx, "e1").Return(sampleEvent(), nil)

			_, err := uc.Patch(ctx, "e1", "lead-1", []byte(tc.patch))
			assert.ErrorIs(t, err, tc.want)
			events.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		})
	}
}

func TestEventUseCase_Patch_RequiresLead(t *testing.T) {
	ctx := context.Background()
	uc, clubs, events, _ := newEventUseCase()
	events.On("GetByID", ctx, "e1").Return(sampleEvent(), nil)
	clubs.On("GetByID", ctx, "c1").Return(&entity.Club{ID: "c1"}, nil)
	clubs.On("GetMembership", ctx, "c1", "student-1").Return(&entity.ClubMember{Role: entity.MemberRoleMember}, nil)

	_, err := uc.Patch(ctx, "e1", "student-1", []byte(`[{"op":"replace","path":"/title","value":"x"}]`))
	assert.ErrorIs(t, err, domainErrors.ErrNotClubLead)
}

func TestEventUseCase_Approve(t *testing.T) {
	ctx := context.Background()
	uc, _, events, feed := newEventUseCase()

	events.On("GetByID", ctx, "e1").Return(sampleEvent(), nil)
	events.On("Approve", ctx, "e1").Return(nil).Once()
	feed.On("PublishToClub", "c1", ws.TypeEventApproved, mock.MatchedBy(func(e *entity.Event) bool {
		return e.IsAdminApproved
	})).Once()

	require.NoError(t, uc.Approve(ctx, "e1"))
	feed.AssertExpectations(t)
}

func TestEventUseCase_Upcoming(t *testing.T) {
	ctx := context.Background()
	uc, _, events, _ := newEventUseCase()
	events.On("ListPublished", ctx, []string(nil), HomeEventLimit).Return([]entity.Event{{ID: "e1"}}, nil)

	list, err := uc.Upcoming(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
